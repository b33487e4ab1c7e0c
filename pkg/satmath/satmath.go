// Package satmath は符号付き整数の飽和演算を提供します。
// 結果が型の範囲を超える場合はラップせず最大値または最小値に張り付きます。
package satmath

import "golang.org/x/exp/constraints"

// Max は型 T の最大値を返します
func Max[T constraints.Signed]() T {
	var v T = 1
	for next := v<<1 | 1; next > v; next = v<<1 | 1 {
		v = next
	}
	return v
}

// Min は型 T の最小値を返します
func Min[T constraints.Signed]() T {
	return -Max[T]() - 1
}

// Add は a + b を飽和演算で計算します
func Add[T constraints.Signed](a, b T) T {
	c := a + b
	switch {
	case b > 0 && c < a:
		return Max[T]()
	case b < 0 && c > a:
		return Min[T]()
	}
	return c
}

// Mul は a * b を飽和演算で計算します
func Mul[T constraints.Signed](a, b T) T {
	if a == 0 || b == 0 {
		return 0
	}
	lo := Min[T]()
	c := a * b
	if (a == -1 && b == lo) || (b == -1 && a == lo) || c/b != a {
		if (a < 0) != (b < 0) {
			return lo
		}
		return Max[T]()
	}
	return c
}
