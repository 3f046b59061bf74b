package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"
)

// NewLocalStore 以 dir 为缓存根目录构建磁盘存储。与 NewStore 一样，根目录在首次写入时才创建。
func NewLocalStore(dir string) (Store, error) {
	if dir == "" {
		return nil, errors.New("storage path required")
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage path: %w", err)
	}

	parent, base := filepath.Dir(abs), filepath.Base(abs)
	if base == string(filepath.Separator) || base == "." {
		return nil, fmt.Errorf("storage path must not be a filesystem root: %s", abs)
	}

	return NewStore(osfs.New(parent), base), nil
}

// NewStore 在 fsys 内以 root 为根目录构建存储，测试可注入 memfs。
func NewStore(fsys billy.Filesystem, root string) Store {
	return &fileStore{
		fsys: fsys,
		root: root,
	}
}

// fileStore 不做任何进程内加锁：同一 key 的并发写入由 rename 决定最后的赢家。
type fileStore struct {
	fsys billy.Filesystem
	root string
}

func (s *fileStore) Root() string {
	return s.fsys.Join(s.fsys.Root(), s.root)
}

func (s *fileStore) Read(key string) ([]byte, error) {
	filePath, err := s.path(key)
	if err != nil {
		return nil, err
	}

	info, err := s.fsys.Stat(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrNotFound
	}

	data, err := util.ReadFile(s.fsys, filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *fileStore) Write(key string, data []byte) error {
	filePath, err := s.path(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(filePath)
	if err := s.fsys.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// 临时文件与目标位于同一目录，保证 rename 不跨卷；文件名长度固定，与 key 无关。
	tempName := s.fsys.Join(dir, fmt.Sprintf(".%s.tmp", uuid.NewString()))
	tempFile, err := s.fsys.OpenFile(tempName, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	err = writeLocked(tempFile, data)
	closeErr := tempFile.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = s.fsys.Remove(tempName)
		return err
	}

	if err := s.fsys.Rename(tempName, filePath); err != nil {
		_ = s.fsys.Remove(tempName)
		return err
	}
	return nil
}

func (s *fileStore) Exists(key string) bool {
	filePath, err := s.path(key)
	if err != nil {
		return false
	}
	info, err := s.fsys.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func (s *fileStore) Remove(key string) error {
	filePath, err := s.path(key)
	if err != nil {
		return err
	}
	return util.RemoveAll(s.fsys, filePath)
}

func (s *fileStore) Clear() error {
	return util.RemoveAll(s.fsys, s.root)
}

func (s *fileStore) path(key string) (string, error) {
	rel := path.Clean("/" + key)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" {
		return "", ErrInvalidPath
	}
	return s.fsys.Join(s.root, filepath.FromSlash(rel)), nil
}

// writeLocked 在独占锁内写入全部数据。
func writeLocked(f billy.File, data []byte) error {
	if err := f.Lock(); err != nil {
		return err
	}
	_, err := f.Write(data)
	if unlockErr := f.Unlock(); err == nil {
		err = unlockErr
	}
	return err
}
