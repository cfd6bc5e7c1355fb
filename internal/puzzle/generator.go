package puzzle

import (
	"context"
	"fmt"

	"github.com/ioulasri/CodeArena/internal/models"
)

// Generator 퍼즐 타입 하나의 입력/정답 생성기
// 같은 퍼즐이라도 호출마다 값이 다른 입력을 만들고 정답을 함께 계산함
type Generator interface {
	Generate(params map[string]int) (inputData, expectedAnswer string, err error)
}

var generators = map[string]Generator{
	"crystal_sum":     crystalSumGenerator{},
	"pattern_counter": patternCounterGenerator{},
	"grid_path":       gridPathGenerator{},
	"sequence_finder": sequenceFinderGenerator{},
	"tower_blocks":    towerBlocksGenerator{},
}

// Factory 퍼즐 정의의 generator_type에 따라 입력을 발급
// match.Issuer 구현체
type Factory struct{}

// NewFactory Factory 생성
func NewFactory() *Factory {
	return &Factory{}
}

// Issue 퍼즐 인스턴스 하나 발급
func (f *Factory) Issue(ctx context.Context, p *models.Puzzle) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	gen, ok := generators[p.GeneratorType]
	if !ok {
		return "", "", fmt.Errorf("unknown generator type: %s", p.GeneratorType)
	}

	return gen.Generate(p.GeneratorParams)
}

func param(params map[string]int, key string, fallback int) int {
	if v, ok := params[key]; ok && v > 0 {
		return v
	}
	return fallback
}
