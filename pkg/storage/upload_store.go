package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"unicode"

	"github.com/spf13/afero"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrFileTooLarge 上传文件超过大小限制
var ErrFileTooLarge = errors.New("uploaded file exceeds size limit")

// UploadStore 上传文件存储（afero 文件系统之上）
// 路径布局：
//   - 原始影像：{patientID}/{filename}
//   - 缩略图：{patientID}/thumbs/{position}.png
type UploadStore struct {
	fs       afero.Fs
	maxBytes int64
}

// NewUploadStore 创建上传文件存储
// maxBytes <= 0 表示不限制单文件大小
func NewUploadStore(fs afero.Fs, maxBytes int64) *UploadStore {
	return &UploadStore{fs: fs, maxBytes: maxBytes}
}

// NewOsUploadStore 以本地目录 root 为根创建存储
func NewOsUploadStore(root string, maxBytes int64) (*UploadStore, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir failed: %w", err)
	}
	return NewUploadStore(afero.NewBasePathFs(osFs, root), maxBytes), nil
}

// Save 保存上传文件，返回存储路径
func (s *UploadStore) Save(ctx context.Context, patientID, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := patientDir(patientID)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create patient dir failed: %w", err)
	}

	storedPath := path.Join(dir, SecureFilename(filename))
	f, err := s.fs.Create(storedPath)
	if err != nil {
		return "", fmt.Errorf("create file failed: %w", err)
	}

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	n, copyErr := io.Copy(f, src)
	closeErr := f.Close()

	if copyErr == nil && s.maxBytes > 0 && n > s.maxBytes {
		copyErr = ErrFileTooLarge
	}
	if copyErr != nil {
		_ = s.fs.Remove(storedPath)
		return "", fmt.Errorf("write %s failed: %w", storedPath, copyErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("close %s failed: %w", storedPath, closeErr)
	}

	return storedPath, nil
}

// Open 打开已存储的文件
func (s *UploadStore) Open(storedPath string) (afero.File, error) {
	return s.fs.Open(storedPath)
}

// CreateThumbnail 创建缩略图文件（调用方负责关闭）
func (s *UploadStore) CreateThumbnail(patientID, position string) (afero.File, string, error) {
	dir := path.Join(patientDir(patientID), "thumbs")
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("create thumbs dir failed: %w", err)
	}

	thumbPath := path.Join(dir, SecureFilename(position)+".png")
	f, err := s.fs.Create(thumbPath)
	if err != nil {
		return nil, "", fmt.Errorf("create thumbnail failed: %w", err)
	}
	return f, thumbPath, nil
}

// Exists 判断文件是否存在
func (s *UploadStore) Exists(storedPath string) bool {
	ok, err := afero.Exists(s.fs, storedPath)
	return err == nil && ok
}

// RemovePatient 删除患者的全部文件，目录不存在时不报错
func (s *UploadStore) RemovePatient(patientID string) error {
	dir := patientDir(patientID)
	if err := s.fs.RemoveAll(dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s failed: %w", dir, err)
	}
	return nil
}

func patientDir(patientID string) string {
	return SecureFilename(patientID)
}

// SecureFilename 生成安全文件名
// NFKD 分解后只保留 ASCII，取文件名部分，空白替换为 "_"，
// 去掉 [A-Za-z0-9._-] 以外的字符以及首尾的 "." 和 "_"
func SecureFilename(name string) string {
	if folded, _, err := transform.String(asciiFold, name); err == nil {
		name = folded
	}
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.Join(strings.Fields(name), "_")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}

	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "" {
		return "upload"
	}
	return cleaned
}

// asciiFold 拆出组合附加符号并丢弃（é -> e）
var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
