package respack

import (
	"github.com/klauspost/compress/zstd"
)

// 展開先バッファの事前確保の上限
const maxPrealloc = 16 << 20

// compressZstd はデータを zstd で圧縮します
func compressZstd(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

// decompressZstd は zstd で圧縮されたデータを展開します
func decompressZstd(data []byte, sizeHint uint32) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, make([]byte, 0, min(sizeHint, maxPrealloc)))
}
