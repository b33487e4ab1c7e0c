// Package respack は STEP.DAT などのリソースパック（.DATファイル）を読み書きするためのパッケージです。
//
// リソースパックは名前付きのメンバーファイルを1つにまとめたコンテナです。
// エントリテーブルはローリング XOR で難読化され、メンバー名は EUC-KR で格納されます。
// 各メンバーは zstd 圧縮と XOR 難読化を個別に持てます。
//
// 基本的な使い方:
//
//	pack, err := respack.Load("STEP.DAT")
//	if err != nil {
//	    return err
//	}
//	for _, name := range pack.NamesSortedByName() {
//	    data, err := pack.ReadFile(name)
//	    // data を編集...
//	    err = pack.SetFileData(name, data)
//	}
//	buf, err := pack.Serialize()
package respack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"slices"

	"github.com/shiroemons/go-stxoffset/pkg/crypto"
	"github.com/shiroemons/go-stxoffset/pkg/euckr"
)

// Magic はリソースパックの先頭4バイトです
var Magic = [4]byte{'R', 'P', 'A', 'K'}

// FormatVersion は読み書きできるフォーマットバージョンです
const FormatVersion uint16 = 1

const (
	headerSize     = 16 // magic(4) + version(2) + reserved(2) + count(4) + tableKey(1) + pad(3)
	entryFixedSize = 20 // nameLen(2) + flags(2) + key(1) + pad(3) + offset(4) + stored(4) + size(4)
	tableKeyStep   = 0x3D
)

// Flag はメンバーの格納方法を表します
type Flag uint16

const (
	// FlagZstd はメンバーが zstd で圧縮されていることを表します
	FlagZstd Flag = 1 << iota
	// FlagXOR はメンバーがエントリのキーで XOR されていることを表します
	FlagXOR
)

// Has はフラグが立っているかどうかを返します
func (f Flag) Has(flag Flag) bool {
	return f&flag != 0
}

// Entry はリソースパック内のメンバーを表します
type Entry struct {
	Name  string
	Flags Flag
	Key   byte

	size   uint32 // 展開後のサイズ
	stored []byte // 圧縮・難読化済みのデータ
}

// GetEntryName はエントリ名を取得します
func (e *Entry) GetEntryName() string {
	return e.Name
}

// GetOriginalSize は展開後のサイズを取得します
func (e *Entry) GetOriginalSize() uint32 {
	return e.size
}

// GetStoredSize は格納サイズを取得します
func (e *Entry) GetStoredSize() uint32 {
	return uint32(len(e.stored))
}

// Archive はリソースパックを表します
type Archive struct {
	Path     string
	TableKey byte

	entries []*Entry
	index   map[string]*Entry
}

// New は空のリソースパックを作成します
func New() *Archive {
	return &Archive{
		entries: make([]*Entry, 0),
		index:   make(map[string]*Entry),
	}
}

// Load はファイルパスからリソースパックを読み込みます
func Load(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	a, err := Parse(data)
	if err != nil {
		return nil, err
	}
	a.Path = path
	return a, nil
}

// Parse はバイト列からリソースパックを読み込みます
func Parse(data []byte) (*Archive, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: header needs %d bytes, got %d", ErrTruncated, headerSize, len(data))
	}

	var magic [4]byte
	copy(magic[:], data[0:4])
	if magic != Magic {
		return nil, fmt.Errorf("%w: % X", ErrInvalidMagic, magic[:])
	}
	version := binary.LittleEndian.Uint16(data[4:])
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	count := binary.LittleEndian.Uint32(data[8:])
	tableKey := data[12]

	a := New()
	a.TableKey = tableKey

	// テーブルは可変長なので、残り全体を復号してから読み進める
	table := make([]byte, len(data)-headerSize)
	copy(table, data[headerSize:])
	crypto.RollXOR(table, tableKey, tableKeyStep)
	r := bytes.NewReader(table)

	if uint64(count)*entryFixedSize > uint64(r.Len()) {
		return nil, fmt.Errorf("%w: entry table of %d entries", ErrTruncated, count)
	}

	for i := uint32(0); i < count; i++ {
		var nameLen, flags uint16
		var key byte
		var pad [3]byte
		var offset, stored, size uint32
		if err := readFields(r, &nameLen, &flags, &key, &pad, &offset, &stored, &size); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		nameBytes := make([]byte, nameLen)
		if _, err := io.ReadFull(r, nameBytes); err != nil {
			return nil, fmt.Errorf("%w: name of entry %d", ErrTruncated, i)
		}
		name, err := euckr.Decode(nameBytes)
		if err != nil {
			return nil, fmt.Errorf("entry %d: invalid name: %w", i, err)
		}

		if uint64(offset)+uint64(stored) > uint64(len(data)) {
			return nil, fmt.Errorf("%w: %s at %d+%d exceeds file size %d", ErrTruncated, name, offset, stored, len(data))
		}
		if _, dup := a.index[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEntry, name)
		}

		payload := make([]byte, stored)
		copy(payload, data[offset:uint64(offset)+uint64(stored)])
		e := &Entry{
			Name:   name,
			Flags:  Flag(flags),
			Key:    key,
			size:   size,
			stored: payload,
		}
		a.entries = append(a.entries, e)
		a.index[name] = e
	}

	return a, nil
}

func readFields(r io.Reader, fields ...any) error {
	for _, field := range fields {
		if err := binary.Read(r, binary.LittleEndian, field); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return ErrTruncated
			}
			return err
		}
	}
	return nil
}

// Entries は格納順のエントリ一覧を返します
func (a *Archive) Entries() []*Entry {
	return slices.Clone(a.entries)
}

// NamesSortedByName はメンバー名を名前順に並べて返します
func (a *Archive) NamesSortedByName() []string {
	names := make([]string, len(a.entries))
	for i, e := range a.entries {
		names[i] = e.Name
	}
	slices.Sort(names)
	return names
}

// Add は新しいメンバーを追加します
func (a *Archive) Add(name string, data []byte, flags Flag, key byte) error {
	if _, dup := a.index[name]; dup {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, name)
	}
	e := &Entry{Name: name, Flags: flags, Key: key}
	if err := e.store(data); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	a.entries = append(a.entries, e)
	a.index[name] = e
	return nil
}

// ReadFile はメンバーの内容を展開して返します
func (a *Archive) ReadFile(name string) ([]byte, error) {
	e, ok := a.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	data, err := e.load()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return data, nil
}

// SetFileData はメンバーの内容を置き換えます。格納方法（フラグとキー）は維持されます。
func (a *Archive) SetFileData(name string, data []byte) error {
	e, ok := a.index[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	if err := e.store(data); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Serialize はリソースパック全体をバイト列にします
func (a *Archive) Serialize() ([]byte, error) {
	names := make([][]byte, len(a.entries))
	tableSize := 0
	for i, e := range a.entries {
		b, err := euckr.Encode(e.Name)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid name: %w", e.Name, err)
		}
		if len(b) > math.MaxUint16 {
			return nil, fmt.Errorf("%w: name of %s", ErrTooLarge, e.Name)
		}
		names[i] = b
		tableSize += entryFixedSize + len(b)
	}

	var table bytes.Buffer
	offset := uint64(headerSize + tableSize)
	for i, e := range a.entries {
		stored := uint64(len(e.stored))
		if offset+stored > math.MaxUint32 {
			return nil, fmt.Errorf("%w: %s ends beyond 4GiB", ErrTooLarge, e.Name)
		}
		binary.Write(&table, binary.LittleEndian, uint16(len(names[i])))
		binary.Write(&table, binary.LittleEndian, uint16(e.Flags))
		table.Write([]byte{e.Key, 0, 0, 0})
		binary.Write(&table, binary.LittleEndian, uint32(offset))
		binary.Write(&table, binary.LittleEndian, uint32(stored))
		binary.Write(&table, binary.LittleEndian, e.size)
		table.Write(names[i])
		offset += stored
	}
	tableBytes := table.Bytes()
	crypto.RollXOR(tableBytes, a.TableKey, tableKeyStep)

	var buf bytes.Buffer
	buf.Grow(int(offset))
	buf.Write(Magic[:])
	binary.Write(&buf, binary.LittleEndian, FormatVersion)
	binary.Write(&buf, binary.LittleEndian, uint16(0))
	binary.Write(&buf, binary.LittleEndian, uint32(len(a.entries)))
	buf.Write([]byte{a.TableKey, 0, 0, 0})
	buf.Write(tableBytes)
	for _, e := range a.entries {
		buf.Write(e.stored)
	}

	return buf.Bytes(), nil
}

// load は格納データを展開します
func (e *Entry) load() ([]byte, error) {
	data := slices.Clone(e.stored)
	if e.Flags.Has(FlagXOR) {
		crypto.XOR(data, e.Key)
	}
	if e.Flags.Has(FlagZstd) {
		var err error
		if data, err = decompressZstd(data, e.size); err != nil {
			return nil, err
		}
	}
	if uint64(len(data)) != uint64(e.size) {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(data), e.size)
	}
	return data, nil
}

// store はデータをエントリの格納方法で格納します
func (e *Entry) store(data []byte) error {
	if uint64(len(data)) > math.MaxUint32 {
		return ErrTooLarge
	}
	stored := slices.Clone(data)
	if e.Flags.Has(FlagZstd) {
		var err error
		if stored, err = compressZstd(stored); err != nil {
			return err
		}
	}
	if e.Flags.Has(FlagXOR) {
		crypto.XOR(stored, e.Key)
	}
	e.size = uint32(len(data))
	e.stored = stored
	return nil
}
