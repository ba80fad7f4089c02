// Copyright 2015 The go-ethereum Authors
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

import (
	"flag"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/sunyihoo/abicodec/common/hexutil"
	"github.com/urfave/cli/v2"
)

// PathString is custom type which is registered in the flags library which cli uses for
// argument parsing. This allows us to expand Value to an absolute path when
// the argument is parsed.
// PathString 是一个自定义类型，注册在 CLI 的标志库中用于参数解析。
// 它允许在解析参数时展开路径。
type PathString string

func (s *PathString) String() string {
	return string(*s)
}

func (s *PathString) Set(value string) error {
	*s = PathString(expandPath(value)) // 展开路径并设置。
	return nil
}

var (
	_ cli.Flag              = (*PathFlag)(nil)
	_ cli.RequiredFlag      = (*PathFlag)(nil)
	_ cli.VisibleFlag       = (*PathFlag)(nil)
	_ cli.DocGenerationFlag = (*PathFlag)(nil)
	_ cli.CategorizableFlag = (*PathFlag)(nil)
)

// PathFlag is custom cli.Flag type which expands the received string to a clean path.
// e.g. ~/abi/token.json -> /home/username/abi/token.json
// PathFlag 是一个自定义的 CLI 标志类型，将接收到的文件路径展开。
type PathFlag struct {
	Name string

	Category    string
	DefaultText string
	Usage       string

	Required   bool
	Hidden     bool
	HasBeenSet bool

	Value PathString

	Aliases []string
	EnvVars []string
}

// For cli.Flag:
func (f *PathFlag) Names() []string { return append([]string{f.Name}, f.Aliases...) }
func (f *PathFlag) IsSet() bool     { return f.HasBeenSet }
func (f *PathFlag) String() string  { return cli.FlagStringer(f) }

// Apply called by cli library, grabs variable from environment (if in env)
// and adds variable to flag set for parsing.
// Apply 被 CLI 库调用，从环境变量中获取值（如果存在）并将其添加到标志集中进行解析。
func (f *PathFlag) Apply(set *flag.FlagSet) error {
	for _, envVar := range f.EnvVars {
		envVar = strings.TrimSpace(envVar)
		if value, found := syscall.Getenv(envVar); found {
			f.Value.Set(value)
			f.HasBeenSet = true
			break
		}
	}
	eachName(f, func(name string) {
		set.Var(&f.Value, name, f.Usage)
	})
	return nil
}

// For cli.RequiredFlag:
func (f *PathFlag) IsRequired() bool { return f.Required }

// For cli.VisibleFlag:
func (f *PathFlag) IsVisible() bool { return !f.Hidden }

// For cli.CategorizableFlag:
func (f *PathFlag) GetCategory() string { return f.Category }

// For cli.DocGenerationFlag:
func (f *PathFlag) TakesValue() bool     { return true }
func (f *PathFlag) GetUsage() string     { return f.Usage }
func (f *PathFlag) GetValue() string     { return f.Value.String() }
func (f *PathFlag) GetEnvVars() []string { return f.EnvVars }
func (f *PathFlag) GetDefaultText() string {
	if f.DefaultText != "" {
		return f.DefaultText
	}
	return f.GetValue()
}

var (
	_ cli.Flag              = (*HexFlag)(nil)
	_ cli.RequiredFlag      = (*HexFlag)(nil)
	_ cli.VisibleFlag       = (*HexFlag)(nil)
	_ cli.DocGenerationFlag = (*HexFlag)(nil)
	_ cli.CategorizableFlag = (*HexFlag)(nil)
)

// HexFlag is a command line flag that accepts a byte string in hexadecimal
// syntax, with or without 0x prefix.
// HexFlag 是一个接受十六进制字节串的命令行标志，0x 前缀可选。
type HexFlag struct {
	Name string

	Category    string
	DefaultText string
	Usage       string

	Required   bool
	Hidden     bool
	HasBeenSet bool

	Value hexValue

	Aliases []string
	EnvVars []string
}

// For cli.Flag:

func (f *HexFlag) Names() []string { return append([]string{f.Name}, f.Aliases...) }
func (f *HexFlag) IsSet() bool     { return f.HasBeenSet }
func (f *HexFlag) String() string  { return cli.FlagStringer(f) }

func (f *HexFlag) Apply(set *flag.FlagSet) error {
	for _, envVar := range f.EnvVars {
		envVar = strings.TrimSpace(envVar)
		if value, found := syscall.Getenv(envVar); found {
			if err := f.Value.Set(value); err != nil {
				return fmt.Errorf("could not parse %q from environment variable %q for flag %s: %v", value, envVar, f.Name, err)
			}
			f.HasBeenSet = true
			break
		}
	}
	eachName(f, func(name string) {
		set.Var(&f.Value, name, f.Usage)
	})
	return nil
}

// For cli.RequiredFlag:

func (f *HexFlag) IsRequired() bool { return f.Required }

// For cli.VisibleFlag:

func (f *HexFlag) IsVisible() bool { return !f.Hidden }

// For cli.CategorizableFlag:

func (f *HexFlag) GetCategory() string { return f.Category }

// For cli.DocGenerationFlag:

func (f *HexFlag) TakesValue() bool     { return true }
func (f *HexFlag) GetUsage() string     { return f.Usage }
func (f *HexFlag) GetValue() string     { return f.Value.String() }
func (f *HexFlag) GetEnvVars() []string { return f.EnvVars }
func (f *HexFlag) GetDefaultText() string {
	if f.DefaultText != "" {
		return f.DefaultText
	}
	return f.GetValue()
}

// hexValue turns a byte slice into a flag.Value
// hexValue 将字节切片转换为 flag.Value。
type hexValue []byte

func (b *hexValue) String() string {
	if b == nil || len(*b) == 0 {
		return ""
	}
	return hexutil.Encode(*b)
}

func (b *hexValue) Set(s string) error {
	dec, err := hexutil.DecodeLoose(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*b = dec
	return nil
}

func (b *hexValue) Get() any { return []byte(*b) }

// GlobalHex returns the bytes of a HexFlag.
// GlobalHex 返回 HexFlag 的字节值。
func GlobalHex(ctx *cli.Context, name string) []byte {
	val := ctx.Generic(name)
	if val == nil {
		return nil
	}
	return []byte(*val.(*hexValue))
}

// Expands a file path
// 1. replace tilde with users home dir
// 2. expands embedded environment variables
// 3. cleans the path, e.g. /a/b/../c -> /a/c
// Note, it has limitations, e.g. ~someuser/tmp will not be expanded
// expandPath 扩展文件路径：
// 1. 将波浪号替换为用户的主目录。
// 2. 展开嵌入的环境变量。
// 3. 清理路径，例如 /a/b/../c -> /a/c。
func expandPath(p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~\\") {
		if home := HomeDir(); home != "" {
			p = home + p[1:]
		}
	}
	return filepath.Clean(os.ExpandEnv(p))
}

func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

func eachName(f cli.Flag, fn func(string)) {
	for _, name := range f.Names() {
		name = strings.Trim(name, " ")
		fn(name)
	}
}
