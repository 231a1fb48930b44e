// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytes32JSON(t *testing.T) {
	quoted := `"0x00000000000000000000000000000000000000000000000000006d6173746572"`

	var b Bytes32
	require.NoError(t, json.Unmarshal([]byte(quoted), &b))
	assert.Equal(t, BytesToBytes32([]byte("master")), b)

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, quoted, string(data))

	data, err = json.Marshal(&b)
	require.NoError(t, err)
	assert.Equal(t, quoted, string(data))

	assert.Error(t, json.Unmarshal([]byte(`12`), &b))
}

func TestParseBytes32(t *testing.T) {
	_, err := ParseBytes32("0x1234")
	assert.EqualError(t, err, "invalid length")

	_, err = ParseBytes32("1x" + "00000000000000000000000000000000000000000000000000006d6173746572")
	assert.EqualError(t, err, "invalid prefix")

	b, err := ParseBytes32("00000000000000000000000000000000000000000000000000006d6173746572")
	require.NoError(t, err)
	assert.Equal(t, BytesToBytes32([]byte("master")), b)
	assert.False(t, b.IsZero())

	upper, err := ParseBytes32("0X00000000000000000000000000000000000000000000000000006D6173746572")
	require.NoError(t, err)
	assert.Equal(t, b, upper)
}

func TestWords(t *testing.T) {
	assert.Equal(t, BytesToBytes32(big.NewInt(1_000_000).Bytes()), Uint64Word(1_000_000))
	assert.Equal(t, Uint64Word(1), BoolWord(true))
	assert.True(t, BoolWord(false).IsZero())

	addr := BytesToAddress([]byte("attestor"))
	word := addr.Word()
	assert.Equal(t, make([]byte, 12), word[:12])
	assert.Equal(t, addr.Bytes(), word[12:])
}

func TestAddressJSON(t *testing.T) {
	addr := BytesToAddress([]byte("attestor"))

	data, err := json.Marshal(&addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)

	assert.Error(t, json.Unmarshal([]byte(`"0xzz"`), &decoded))
	assert.True(t, NativeToken.IsZero())
}
