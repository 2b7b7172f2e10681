// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package crypto

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Hash returns the sha3-256 digest of the given data.
func Hash(data []byte) []byte {
	hashFunc := sha3.New256()
	hashFunc.Write(data)
	return hashFunc.Sum(nil)
}

// HashStrToHex returns the hex encoded sha3-256 digest of the given string.
func HashStrToHex(s string) string {
	return hex.EncodeToString(Hash([]byte(s)))
}

// HashBytesBuffer hashes the concatenation of all the given byte slices.
func HashBytesBuffer(data ...[]byte) []byte {
	hashFunc := sha3.New256()
	for _, d := range data {
		hashFunc.Write(d)
	}
	return hashFunc.Sum(nil)
}
