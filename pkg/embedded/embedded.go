// Package embedded 提供嵌入数据文件的统一访问接口
//
// 升级目录、会话默认配置等 YAML 数据随二进制一起发布，
// 通过本包读取。路径统一以 "data/" 开头。
//
// 默认使用本包目录下嵌入的 data/；调用 Override() 可替换为
// 其他文件系统（如 os.DirFS 指向的外部数据目录）。
package embedded

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

//go:embed data
var defaultDataFS embed.FS

var dataFS fs.FS = defaultDataFS

// Override 使用外部文件系统替换嵌入数据
// 传入 nil 恢复为嵌入的默认数据
func Override(data fs.FS) {
	if data == nil {
		dataFS = defaultDataFS
		return
	}
	dataFS = data
}

// normalizePath 标准化路径并校验前缀
func normalizePath(path string) (string, error) {
	// 标准化路径分隔符为正斜杠（embed.FS 使用正斜杠）
	path = filepath.ToSlash(path)

	// 移除可能的 "./" 前缀
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, "data/") {
		return "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return path, nil
}

// Open 打开嵌入文件
// 路径必须以 "data/" 开头
func Open(path string) (fs.File, error) {
	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}
	return dataFS.Open(path)
}

// ReadFile 读取嵌入文件内容
// 路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// Glob 匹配嵌入文件
// 路径模式必须以 "data/" 开头
func Glob(pattern string) ([]string, error) {
	pattern, err := normalizePath(pattern)
	if err != nil {
		return nil, err
	}
	return fs.Glob(dataFS, pattern)
}
