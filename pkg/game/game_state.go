package game

import "log"

// Phase 躲避小游戏的状态
type Phase int

const (
	// PhaseStart 尚未开始
	PhaseStart Phase = iota
	// PhasePlaying 进行中
	PhasePlaying
	// PhaseGameOver 已结束，等待重新开始
	PhaseGameOver
)

// String 返回状态名
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// AvoidanceState 躲避小游戏的状态机与分数
//
// 分数只在这里记录一份，显示与计分读取同一个字段。
// 状态转换：
//   - start/gameover → playing（Start）
//   - playing → gameover（EndRound）
type AvoidanceState struct {
	phase     Phase
	score     int
	highScore int
	rounds    int
}

// NewAvoidanceState 创建处于 start 状态的游戏状态
func NewAvoidanceState() *AvoidanceState {
	return &AvoidanceState{phase: PhaseStart}
}

// Phase 返回当前状态
func (s *AvoidanceState) Phase() Phase {
	return s.phase
}

// IsPlaying 是否处于进行中
func (s *AvoidanceState) IsPlaying() bool {
	return s.phase == PhasePlaying
}

// Score 当前分数
func (s *AvoidanceState) Score() int {
	return s.score
}

// HighScore 最高分，只增不减
func (s *AvoidanceState) HighScore() int {
	return s.highScore
}

// Rounds 已开始的局数
func (s *AvoidanceState) Rounds() int {
	return s.rounds
}

// Start 开始新的一局：分数归零并进入 playing
// 任何状态下调用都有效（包括 playing，相当于重开）
func (s *AvoidanceState) Start() {
	s.score = 0
	s.phase = PhasePlaying
	s.rounds++
	log.Printf("[AvoidanceState] Round %d started", s.rounds)
}

// AddScore 增加分数，仅在 playing 时生效
func (s *AvoidanceState) AddScore(points int) {
	if s.phase != PhasePlaying {
		return
	}
	s.score += points
}

// EndRound 结束当前局：冻结分数，刷新最高分，进入 gameover
//
// 返回值：
//   - bool: 本局是否刷新了最高分（严格大于原最高分）
//
// 不在 playing 状态时无操作并返回 false。
func (s *AvoidanceState) EndRound() bool {
	if s.phase != PhasePlaying {
		return false
	}
	s.phase = PhaseGameOver

	newHigh := s.score > s.highScore
	if newHigh {
		s.highScore = s.score
	}
	log.Printf("[AvoidanceState] Round %d over: score=%d high=%d", s.rounds, s.score, s.highScore)
	return newHigh
}
