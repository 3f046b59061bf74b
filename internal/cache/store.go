package cache

import "errors"

// Store 负责 durable tier 的读写。磁盘布局遵循：
//
//	<root>/<key>    # 独立可重建的 JSON 记录
//
// key 中的 `/` 会生成嵌套目录；每个条目只由一个记录文件组成。
type Store interface {
	// Read 返回 key 对应记录的完整内容。文件不存在或路径是目录时返回 ErrNotFound。
	Read(key string) ([]byte, error)

	// Write 通过同目录临时文件 `.<uuid>.tmp` + rename 原子替换记录，失败时清理临时文件。
	Write(key string, data []byte) error

	// Exists 仅判断记录文件是否存在，不读取内容。
	Exists(key string) bool

	// Remove 递归删除 key 对应的路径，路径不存在视为成功。
	Remove(key string) error

	// Clear 递归删除整个缓存根目录。
	Clear() error

	// Root 返回缓存根目录，便于日志与诊断输出。
	Root() string
}

// ErrNotFound 表示记录不存在。
var ErrNotFound = errors.New("cache entry not found")

// ErrInvalidPath 表示 key 无法映射为根目录下的合法路径。
var ErrInvalidPath = errors.New("invalid cache path")
