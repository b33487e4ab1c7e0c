// Package batch は STEP.DAT のメンバーや STEP ディレクトリ内のファイルに
// オフセットを1件ずつ適用します。1件の失敗で処理全体を止めることはありません。
package batch

import (
	apperrors "github.com/shiroemons/go-stxoffset/internal/offset/errors"
	"github.com/shiroemons/go-stxoffset/internal/offset/interfaces"
)

const statusFormat = "%s にオフセットを適用中... "

// Outcome は1件分の処理結果
type Outcome struct {
	Name string // メンバー名またはファイルパス
	Err  error  // 成功時は nil
}

// OK は処理が成功したかを返します
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Report はバッチ処理の結果をまとめます
type Report struct {
	Source   string
	Outcomes []Outcome
}

// Failed は1件でも失敗があったかを返します
func (r *Report) Failed() bool {
	return r.FailedCount() > 0
}

// SucceededCount は成功件数を返します
func (r *Report) SucceededCount() int {
	return len(r.Outcomes) - r.FailedCount()
}

// FailedCount は失敗件数を返します
func (r *Report) FailedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.OK() {
			n++
		}
	}
	return n
}

// Errors は失敗した項目のエラーを処理順に返します
func (r *Report) Errors() []error {
	var errs []error
	for _, o := range r.Outcomes {
		if !o.OK() {
			errs = append(errs, o.Err)
		}
	}
	return errs
}

// record は結果を表示して記録します
func (r *Report) record(logger interfaces.Logger, name string, err error) {
	if err == nil {
		logger.Resultln("OK")
		r.Outcomes = append(r.Outcomes, Outcome{Name: name})
		return
	}

	itemErr := apperrors.NewItemError(name, err)
	logger.Resultln("ERROR")
	logger.Errorf("%s でエラーが発生しました: %v", name, err)
	r.Outcomes = append(r.Outcomes, Outcome{Name: name, Err: itemErr})
}
