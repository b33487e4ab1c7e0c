package batch

import (
	"testing"

	"github.com/shiroemons/go-stxoffset/internal/offset/interfaces"
	"github.com/shiroemons/go-stxoffset/pkg/stx"
)

// stepBytes は全モードの最初のブロックに delay を持つ STX を作成します
func stepBytes(t *testing.T, version stx.Version, delay int32) []byte {
	t.Helper()
	f, err := stx.New(version)
	if err != nil {
		t.Fatalf("stx.New() error = %v", err)
	}
	for _, mode := range stx.LegacyModes() {
		data := &stx.StepData{
			Mode: mode,
			Splits: []stx.Split{
				{Blocks: []stx.Block{{DelayMs: delay, BPM: 140, BeatPerMeasure: 4, BeatSplit: 8}}},
				{Blocks: []stx.Block{{DelayMs: delay, BPM: 140, BeatPerMeasure: 4, BeatSplit: 8}}},
			},
		}
		if err := f.SetStepData(version, data); err != nil {
			t.Fatalf("SetStepData() error = %v", err)
		}
	}
	buf, err := f.Encode(version)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return buf
}

// emptyStepBytes はスプリットを持たない STX を作成します
func emptyStepBytes(t *testing.T) []byte {
	t.Helper()
	f, err := stx.New(stx.Version1)
	if err != nil {
		t.Fatalf("stx.New() error = %v", err)
	}
	buf, err := f.Encode(stx.Version1)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return buf
}

// firstDelays は各モードの最初と2番目のスプリット先頭ブロックのディレイを返します
func firstDelays(t *testing.T, data []byte) (first, second int32, version stx.Version) {
	t.Helper()
	f, err := stx.Decode(data)
	if err != nil {
		t.Fatalf("stx.Decode() error = %v", err)
	}
	for i, mode := range stx.LegacyModes() {
		step, err := f.ReadStepData(mode)
		if err != nil {
			t.Fatalf("ReadStepData(%s) error = %v", mode, err)
		}
		d1, d2 := step.Splits[0].Blocks[0].DelayMs, step.Splits[1].Blocks[0].DelayMs
		if i > 0 && (d1 != first || d2 != second) {
			t.Fatalf("%s delays (%d, %d) differ from other modes (%d, %d)", mode, d1, d2, first, second)
		}
		first, second = d1, d2
	}
	return first, second, f.Version()
}

// fakeLoader は用意したコンテナを返す ContainerLoader
type fakeLoader struct {
	container interfaces.Container
	err       error
	paths     []string
}

func (l *fakeLoader) Load(path string) (interfaces.Container, error) {
	l.paths = append(l.paths, path)
	if l.err != nil {
		return nil, l.err
	}
	return l.container, nil
}
