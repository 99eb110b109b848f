package hashing

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"io"
	"sort"
	"strings"
)

type ChecksumProvider interface {
	GetChecksum() (string, error)
}

// ChecksumReaderProxy is a proxy that calculates the MD5 checksum of data as it's read.
type ChecksumReaderProxy struct {
	reader      io.Reader
	checksum    hash.Hash
	checksumErr error
	size        int64
}

// NewMD5ReaderProxy creates a new instance of ChecksumReaderProxy.
func NewMD5ReaderProxy(reader io.Reader) *ChecksumReaderProxy {
	return &ChecksumReaderProxy{
		reader:   reader,
		checksum: md5.New(),
	}
}

// Read reads data from the underlying reader and feeds it into the checksum.
func (p *ChecksumReaderProxy) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 {
		p.size += int64(n)
		if _, checksumErr := p.checksum.Write(buf[:n]); checksumErr != nil {
			p.checksumErr = checksumErr
			return n, checksumErr
		}
	}
	return n, err
}

// Size returns the number of bytes read so far.
func (p *ChecksumReaderProxy) Size() int64 {
	return p.size
}

// GetChecksum returns the calculated MD5 checksum as a hex string.
func (p *ChecksumReaderProxy) GetChecksum() (string, error) {
	if p.checksumErr == nil {
		return hex.EncodeToString(p.checksum.Sum(nil)), nil
	}
	return "", p.checksumErr
}

// ContentChecksum returns the MD5 checksum of content.
func ContentChecksum(content string) string {
	proxy := NewMD5ReaderProxy(strings.NewReader(content))
	_, _ = io.Copy(io.Discard, proxy)
	sum, _ := proxy.GetChecksum()
	return sum
}

// ChecksumStringSetProxy collects unique strings and checksums them independently of insertion order.
type ChecksumStringSetProxy struct {
	set map[string]struct{}
}

func NewChecksumStringSet() *ChecksumStringSetProxy {
	return &ChecksumStringSetProxy{
		set: make(map[string]struct{}),
	}
}

func (p *ChecksumStringSetProxy) Put(str string) {
	p.set[str] = struct{}{}
}

func (p *ChecksumStringSetProxy) Size() int {
	return len(p.set)
}

func (p *ChecksumStringSetProxy) Map() map[string]struct{} {
	return p.set
}

// GetChecksum returns the MD5 checksum of the sorted set members, one per line.
func (p *ChecksumStringSetProxy) GetChecksum() (string, error) {
	items := make([]string, 0, len(p.set))
	for item := range p.set {
		items = append(items, item)
	}
	sort.Strings(items)

	checksum := md5.New()
	for _, item := range items {
		if _, err := io.WriteString(checksum, item+"\n"); err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(checksum.Sum(nil)), nil
}
