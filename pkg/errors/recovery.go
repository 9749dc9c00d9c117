package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError は recover したパニックから作られたエラーです。
type PanicError struct {
	// PanicValue は panic() に渡された値
	PanicValue interface{}

	// StackTrace はパニック発生時のスタックトレース
	StackTrace string

	// Operation はパニックを回収した操作名
	Operation string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// String はスタックトレースを含む詳細を返します。
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s", e.Operation, e.PanicValue, e.StackTrace)
}

// NewPanicError は新しいPanicErrorを作成します。
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover は defer と組み合わせてパニックをエラーに変換します。
//
//	func (t *Tree) Predict(x []int) (label Label, err error) {
//	    defer errors.Recover(&err, "Predict")
//	    ...
//	}
//
// 既にエラーが設定されている場合はパニック情報でラップします。
func Recover(err *error, operation string) {
	if r := recover(); r != nil {
		if *err != nil {
			*err = fmt.Errorf("panic in %s: %v (original error: %w)", operation, r, *err)
			return
		}
		*err = NewPanicError(operation, r)
	}
}

// SafeExecute は fn を実行し、パニックが発生した場合はPanicErrorとして返します。
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
