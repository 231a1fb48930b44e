// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages contract storage and native balances.
// It follows the flow as bellow:
//
//	        o
//	        |
//	[ revertable state ]
//	        |
//	 [ stacked map ] -> [ journal ] -> [ playback(staging) ] -> [ kv bulk ]
//	        |
//	 [ read-only kv ]
//
// Every entry point of the runtime takes a checkpoint first and reverts to it
// on failure, so a failed operation leaves nothing behind.
package state
