package stx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/shiroemons/go-stxoffset/pkg/euckr"
)

// Magic は STX ファイルの先頭4バイトです
var Magic = [4]byte{'S', 'T', 'X', 0x00}

const (
	headerSize     = 12 // magic(4) + version(2) + modeCount(2) + titleLen(2) + artistLen(2)
	tableEntrySize = 12 // mode(2) + reserved(2) + offset(4) + size(4)
)

// section はレガシーモード1つ分の未展開データです
type section struct {
	version Version
	raw     []byte
}

// File は STX ファイルを表します
type File struct {
	Name   string // 読み込み元（ログ用）
	Title  string
	Artist string

	version  Version
	sections map[LegacyMode]section
}

// New は全てのレガシーモードが空のステップデータを持つ新しい File を作成します
func New(version Version) (*File, error) {
	if !version.IsSupported() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}
	f := &File{
		version:  version,
		sections: make(map[LegacyMode]section, len(legacyModes)),
	}
	for _, mode := range legacyModes {
		if err := f.SetStepData(version, &StepData{Mode: mode}); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Open はファイルパスから STX ファイルを読み込みます
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Decode(data)
	if err != nil {
		return nil, err
	}
	f.Name = path
	return f, nil
}

// Decode はバイト列から STX ファイルを読み込みます。
// セクションの中身は ReadStepData が呼ばれるまで展開しません。
func Decode(data []byte) (*File, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: header needs %d bytes, got %d", ErrTruncated, headerSize, len(data))
	}

	r := bytes.NewReader(data)
	var magic [4]byte
	var version, modeCount, titleLen, artistLen uint16
	// サイズ確認済みなのでヘッダの読み込みは失敗しない
	binary.Read(r, binary.LittleEndian, &magic)
	binary.Read(r, binary.LittleEndian, &version)
	binary.Read(r, binary.LittleEndian, &modeCount)
	binary.Read(r, binary.LittleEndian, &titleLen)
	binary.Read(r, binary.LittleEndian, &artistLen)

	if magic != Magic {
		return nil, fmt.Errorf("%w: % X", ErrInvalidMagic, magic[:])
	}
	if !Version(version).IsSupported() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	f := &File{
		version:  Version(version),
		sections: make(map[LegacyMode]section, modeCount),
	}

	var err error
	if f.Title, err = readString(r, titleLen); err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	if f.Artist, err = readString(r, artistLen); err != nil {
		return nil, fmt.Errorf("artist: %w", err)
	}

	if int(modeCount)*tableEntrySize > r.Len() {
		return nil, fmt.Errorf("%w: section table of %d entries", ErrTruncated, modeCount)
	}
	for i := 0; i < int(modeCount); i++ {
		var mode, reserved uint16
		var offset, size uint32
		binary.Read(r, binary.LittleEndian, &mode)
		binary.Read(r, binary.LittleEndian, &reserved)
		binary.Read(r, binary.LittleEndian, &offset)
		binary.Read(r, binary.LittleEndian, &size)

		m := LegacyMode(mode)
		if !m.IsValid() {
			return nil, fmt.Errorf("%w: %d in table entry %d", ErrUnknownMode, mode, i)
		}
		if _, dup := f.sections[m]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMode, m)
		}
		if uint64(offset)+uint64(size) > uint64(len(data)) {
			return nil, fmt.Errorf("%w: section %s at %d+%d exceeds file size %d", ErrTruncated, m, offset, size, len(data))
		}

		raw := make([]byte, size)
		copy(raw, data[offset:uint64(offset)+uint64(size)])
		f.sections[m] = section{version: f.version, raw: raw}
	}

	return f, nil
}

// Version はファイル本来のフォーマットバージョンを返します
func (f *File) Version() Version {
	return f.version
}

// Modes はファイルに含まれるレガシーモードを正規の順序で返します
func (f *File) Modes() []LegacyMode {
	var modes []LegacyMode
	for _, mode := range legacyModes {
		if _, ok := f.sections[mode]; ok {
			modes = append(modes, mode)
		}
	}
	return modes
}

// ReadStepData は指定したレガシーモードのステップデータを展開して返します。
// 返されたデータを編集しても SetStepData を呼ぶまでファイルには反映されません。
func (f *File) ReadStepData(mode LegacyMode) (*StepData, error) {
	s, ok := f.sections[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModeNotPresent, mode)
	}
	data, err := decodeStepData(s.raw, s.version, mode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", mode, err)
	}
	return data, nil
}

// SetStepData はステップデータを指定バージョンでシリアライズし、data.Mode のセクションに書き戻します
func (f *File) SetStepData(version Version, data *StepData) error {
	if data == nil {
		return ErrNilStepData
	}
	if !version.IsSupported() {
		return fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}
	if !data.Mode.IsValid() {
		return fmt.Errorf("%w: %d", ErrUnknownMode, uint16(data.Mode))
	}
	raw, err := encodeStepData(data, version)
	if err != nil {
		return fmt.Errorf("%s: %w", data.Mode, err)
	}
	f.sections[data.Mode] = section{version: version, raw: raw}
	return nil
}

// Encode はファイル全体を指定バージョンでシリアライズします。
// バージョンが異なるセクションは展開して変換し直します。
func (f *File) Encode(version Version) ([]byte, error) {
	if !version.IsSupported() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}

	title, err := euckr.Encode(f.Title)
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	artist, err := euckr.Encode(f.Artist)
	if err != nil {
		return nil, fmt.Errorf("artist: %w", err)
	}
	if len(title) > math.MaxUint16 || len(artist) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: title/artist", ErrFieldTooLarge)
	}

	modes := f.Modes()
	bodies := make([][]byte, len(modes))
	for i, mode := range modes {
		s := f.sections[mode]
		if s.version == version {
			bodies[i] = s.raw
			continue
		}
		data, err := decodeStepData(s.raw, s.version, mode)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", mode, err)
		}
		if bodies[i], err = encodeStepData(data, version); err != nil {
			return nil, fmt.Errorf("%s: %w", mode, err)
		}
	}

	var buf bytes.Buffer
	buf.Write(Magic[:])
	binary.Write(&buf, binary.LittleEndian, uint16(version))
	binary.Write(&buf, binary.LittleEndian, uint16(len(modes)))
	binary.Write(&buf, binary.LittleEndian, uint16(len(title)))
	binary.Write(&buf, binary.LittleEndian, uint16(len(artist)))
	buf.Write(title)
	buf.Write(artist)

	offset := uint64(headerSize + len(title) + len(artist) + len(modes)*tableEntrySize)
	for i, mode := range modes {
		size := uint64(len(bodies[i]))
		if offset+size > math.MaxUint32 {
			return nil, fmt.Errorf("%w: section %s ends beyond 4GiB", ErrFieldTooLarge, mode)
		}
		binary.Write(&buf, binary.LittleEndian, uint16(mode))
		binary.Write(&buf, binary.LittleEndian, uint16(0))
		binary.Write(&buf, binary.LittleEndian, uint32(offset))
		binary.Write(&buf, binary.LittleEndian, uint32(size))
		offset += size
	}
	for _, body := range bodies {
		buf.Write(body)
	}

	return buf.Bytes(), nil
}

func readString(r *bytes.Reader, n uint16) (string, error) {
	if int(n) > r.Len() {
		return "", fmt.Errorf("%w: string of %d bytes", ErrTruncated, n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return euckr.Decode(b)
}
