// Copyright 2022 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package flags

import "github.com/urfave/cli/v2"

const (
	// CodecCategory 是选择哈希算法与线路格式的标志类别。
	CodecCategory = "CODEC"
	// ABICategory 是与 ABI 文件及方法/事件选择相关的标志类别。
	ABICategory = "ABI"
	// LoggingCategory 是与 Logging and Debugging 相关的标志的类别。
	LoggingCategory = "LOGGING AND DEBUGGING"
	// MiscCategory 是与 Miscellaneous 相关的标志的类别。
	MiscCategory = "MISC"
	// DeprecatedCategory 是与 Aliased (deprecated) 相关的标志的类别。
	DeprecatedCategory = "ALIASED (deprecated)"
)

func init() {
	// 将帮助标志的类别设置为 MiscCategory。
	cli.HelpFlag.(*cli.BoolFlag).Category = MiscCategory
	// 将版本标志的类别设置为 MiscCategory。
	cli.VersionFlag.(*cli.BoolFlag).Category = MiscCategory
}
