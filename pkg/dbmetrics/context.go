package dbmetrics

import (
	"context"
	"sync"
)

type txKey struct{}

type txState struct {
	tx TxExecutor

	mu    sync.Mutex
	hooks []func(ctx context.Context)
}

// WithTx кладет транзакцию в контекст.
// Возвращает функцию, которая выполняет хуки AfterCommit; её вызывает менеджер транзакций после Commit.
func WithTx(ctx context.Context, tx TxExecutor) (context.Context, func(ctx context.Context)) {
	state := &txState{tx: tx}
	return context.WithValue(ctx, txKey{}, state), state.runHooks
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе db
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if state, ok := ctx.Value(txKey{}).(*txState); ok {
		return state.tx
	}
	return db
}

// IsInTransaction сообщает, выполняется ли код внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*txState)
	return ok
}

// AfterCommit откладывает fn до успешного коммита внешней транзакции.
// Вне транзакции fn выполняется сразу. При откате хуки отбрасываются.
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	state, ok := ctx.Value(txKey{}).(*txState)
	if !ok {
		fn(ctx)
		return
	}
	state.mu.Lock()
	state.hooks = append(state.hooks, fn)
	state.mu.Unlock()
}

func (s *txState) runHooks(ctx context.Context) {
	s.mu.Lock()
	hooks := s.hooks
	s.hooks = nil
	s.mu.Unlock()

	for _, hook := range hooks {
		hook(ctx)
	}
}
