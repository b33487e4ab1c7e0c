package stx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// 1ブロックの固定長部分のサイズ（ノーツデータを除く）
const (
	blockFixedSizeV1 = 4 + 4 + 1 + 1 + 4
	blockFixedSizeV2 = blockFixedSizeV1 + 4
)

func blockFixedSize(v Version) int {
	if v == Version2 {
		return blockFixedSizeV2
	}
	return blockFixedSizeV1
}

// decodeStepData はセクションのバイト列をステップデータに展開します
func decodeStepData(raw []byte, version Version, mode LegacyMode) (*StepData, error) {
	r := bytes.NewReader(raw)
	data := &StepData{Mode: mode}

	var splitCount uint16
	if err := binary.Read(r, binary.LittleEndian, &splitCount); err != nil {
		return nil, truncated(err, "split count")
	}

	data.Splits = make([]Split, 0, splitCount)
	for i := 0; i < int(splitCount); i++ {
		var blockCount uint16
		if err := binary.Read(r, binary.LittleEndian, &blockCount); err != nil {
			return nil, truncated(err, "block count of split %d", i)
		}
		if int(blockCount)*blockFixedSize(version) > r.Len() {
			return nil, fmt.Errorf("%w: split %d declares %d blocks, %d bytes left", ErrTruncated, i, blockCount, r.Len())
		}

		split := Split{Blocks: make([]Block, 0, blockCount)}
		for j := 0; j < int(blockCount); j++ {
			block, err := decodeBlock(r, version)
			if err != nil {
				return nil, fmt.Errorf("split %d block %d: %w", i, j, err)
			}
			split.Blocks = append(split.Blocks, block)
		}
		data.Splits = append(data.Splits, split)
	}

	return data, nil
}

func decodeBlock(r *bytes.Reader, version Version) (Block, error) {
	var block Block
	if err := binary.Read(r, binary.LittleEndian, &block.DelayMs); err != nil {
		return Block{}, truncated(err, "delay")
	}
	if err := binary.Read(r, binary.LittleEndian, &block.BPM); err != nil {
		return Block{}, truncated(err, "bpm")
	}
	if version == Version2 {
		if err := binary.Read(r, binary.LittleEndian, &block.Speed); err != nil {
			return Block{}, truncated(err, "speed")
		}
	} else {
		block.Speed = 1
	}
	if err := binary.Read(r, binary.LittleEndian, &block.BeatPerMeasure); err != nil {
		return Block{}, truncated(err, "beat per measure")
	}
	if err := binary.Read(r, binary.LittleEndian, &block.BeatSplit); err != nil {
		return Block{}, truncated(err, "beat split")
	}

	var noteLen uint32
	if err := binary.Read(r, binary.LittleEndian, &noteLen); err != nil {
		return Block{}, truncated(err, "note length")
	}
	if int64(noteLen) > int64(r.Len()) {
		return Block{}, fmt.Errorf("%w: note length %d > remaining %d", ErrTruncated, noteLen, r.Len())
	}
	block.Notes = make([]byte, noteLen)
	if _, err := io.ReadFull(r, block.Notes); err != nil {
		return Block{}, truncated(err, "notes")
	}

	return block, nil
}

// encodeStepData はステップデータを指定バージョンのセクションにシリアライズします
func encodeStepData(data *StepData, version Version) ([]byte, error) {
	if len(data.Splits) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d splits", ErrFieldTooLarge, len(data.Splits))
	}

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint16(len(data.Splits)))
	for i, split := range data.Splits {
		if len(split.Blocks) > math.MaxUint16 {
			return nil, fmt.Errorf("%w: split %d has %d blocks", ErrFieldTooLarge, i, len(split.Blocks))
		}
		binary.Write(&buf, binary.LittleEndian, uint16(len(split.Blocks)))
		for _, block := range split.Blocks {
			if uint64(len(block.Notes)) > math.MaxUint32 {
				return nil, fmt.Errorf("%w: %d note bytes", ErrFieldTooLarge, len(block.Notes))
			}
			binary.Write(&buf, binary.LittleEndian, block.DelayMs)
			binary.Write(&buf, binary.LittleEndian, block.BPM)
			if version == Version2 {
				binary.Write(&buf, binary.LittleEndian, block.Speed)
			}
			buf.WriteByte(block.BeatPerMeasure)
			buf.WriteByte(block.BeatSplit)
			binary.Write(&buf, binary.LittleEndian, uint32(len(block.Notes)))
			buf.Write(block.Notes)
		}
	}

	return buf.Bytes(), nil
}

func truncated(err error, format string, args ...any) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: %s", ErrTruncated, fmt.Sprintf(format, args...))
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
