package model

import (
	"sync"

	"github.com/YuminosukeSato/catree/pkg/errors"
)

// StateManager はモデルの学習状態をスレッドセーフに管理する。
// 学習済みの木は読み取り専用なので、Predict の並行呼び出しはこのロックだけで保護される。
type StateManager struct {
	mu sync.RWMutex

	fitted    bool
	nFeatures int
	nSamples  int
	modelName string
}

// NewStateManager は modelName を NotFittedError に使う StateManager を作成する。
func NewStateManager(modelName string) *StateManager {
	return &StateManager{modelName: modelName}
}

// IsFitted は学習済みかどうかを返す
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted は学習済み状態にし、学習時の次元を記録する
func (s *StateManager) SetFitted(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// Reset は未学習状態に戻す
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFeatures = 0
	s.nSamples = 0
}

// GetDimensions は学習時の属性数とサンプル数を返す
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}

// RequireFitted は未学習の場合に NotFittedError を返す
func (s *StateManager) RequireFitted(method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(s.modelName, method)
	}
	return nil
}

// ModelState はシリアライズ用のモデル状態
type ModelState struct {
	Fitted    bool                   `json:"fitted"`
	NFeatures int                    `json:"n_features,omitempty"`
	NSamples  int                    `json:"n_samples,omitempty"`
	Params    map[string]interface{} `json:"params,omitempty"`
}

// GetState は現在の状態を返す
func (s *StateManager) GetState() ModelState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ModelState{
		Fitted:    s.fitted,
		NFeatures: s.nFeatures,
		NSamples:  s.nSamples,
	}
}

// SetState は保存された状態を復元する
func (s *StateManager) SetState(state ModelState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = state.Fitted
	s.nFeatures = state.NFeatures
	s.nSamples = state.NSamples
}
