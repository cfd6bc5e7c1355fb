package puzzle

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ioulasri/CodeArena/internal/models"
)

func TestCrystalSumGenerator(t *testing.T) {
	for i := 0; i < 20; i++ {
		input, answer, err := crystalSumGenerator{}.Generate(nil)
		require.NoError(t, err)

		// 정답을 입력에서 재계산해 검증
		expected := 0
		for _, line := range strings.Split(input, "\n") {
			n, err := strconv.Atoi(line)
			require.NoError(t, err)
			if n%3 == 0 || n%5 == 0 {
				expected += n
			}
		}

		assert.Equal(t, strconv.Itoa(expected), answer)
	}
}

func TestCrystalSumGenerator_Params(t *testing.T) {
	input, _, err := crystalSumGenerator{}.Generate(map[string]int{
		"min_count": 10,
		"max_count": 10,
		"range":     50,
	})
	require.NoError(t, err)
	assert.Len(t, strings.Split(input, "\n"), 10)
}

func TestPatternCounterGenerator(t *testing.T) {
	for i := 0; i < 20; i++ {
		input, answer, err := patternCounterGenerator{}.Generate(nil)
		require.NoError(t, err)

		lines := strings.SplitN(input, "\n", 3)
		require.Len(t, lines, 3)
		pattern := strings.TrimPrefix(lines[0], "Pattern: ")
		text := lines[2]

		// 겹치는 등장 포함 재계산
		count := 0
		for j := 0; j+len(pattern) <= len(text); j++ {
			if text[j:j+len(pattern)] == pattern {
				count++
			}
		}

		assert.Equal(t, strconv.Itoa(count), answer)
		got, err := strconv.Atoi(answer)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, 5)
	}
}

func TestGridPathGenerator(t *testing.T) {
	for i := 0; i < 10; i++ {
		input, answer, err := gridPathGenerator{}.Generate(map[string]int{"rows": 5, "cols": 5})
		require.NoError(t, err)

		var grid [][]int
		for _, line := range strings.Split(input, "\n") {
			var row []int
			for _, cell := range strings.Fields(line) {
				n, err := strconv.Atoi(cell)
				require.NoError(t, err)
				row = append(row, n)
			}
			grid = append(grid, row)
		}
		require.Len(t, grid, 5)

		// 모든 경로를 재귀 탐색으로 재계산 (5x5면 충분히 작음)
		var best func(r, c int) int
		best = func(r, c int) int {
			if r == len(grid)-1 && c == len(grid[0])-1 {
				return grid[r][c]
			}
			m := -1
			if r+1 < len(grid) {
				m = best(r+1, c)
			}
			if c+1 < len(grid[0]) {
				if v := best(r, c+1); v > m {
					m = v
				}
			}
			return grid[r][c] + m
		}

		assert.Equal(t, strconv.Itoa(best(0, 0)), answer)
	}
}

func TestSequenceFinderGenerator(t *testing.T) {
	for i := 0; i < 50; i++ {
		input, answer, err := sequenceFinderGenerator{}.Generate(nil)
		require.NoError(t, err)

		assert.Len(t, strings.Fields(input), 8)
		assert.Len(t, strings.Fields(answer), 3)

		// 알려진 수열 규칙 중 하나로 이어지는지 확인
		var full []int
		for _, f := range append(strings.Fields(input), strings.Fields(answer)...) {
			n, err := strconv.Atoi(f)
			require.NoError(t, err)
			full = append(full, n)
		}
		assert.True(t, matchesKnownSequence(full), "sequence %v follows no known rule", full)
	}
}

func matchesKnownSequence(seq []int) bool {
	if len(seq) < 3 {
		return false
	}

	arithmetic := true
	diff := seq[1] - seq[0]
	for i := 2; i < len(seq); i++ {
		if seq[i]-seq[i-1] != diff {
			arithmetic = false
			break
		}
	}
	if arithmetic {
		return true
	}

	geometric := seq[0] != 0 && seq[1]%seq[0] == 0
	if geometric {
		ratio := seq[1] / seq[0]
		for i := 1; i < len(seq); i++ {
			if seq[i] != seq[i-1]*ratio {
				geometric = false
				break
			}
		}
		if geometric {
			return true
		}
	}

	fibonacci := true
	for i := 2; i < len(seq); i++ {
		if seq[i] != seq[i-1]+seq[i-2] {
			fibonacci = false
			break
		}
	}
	if fibonacci {
		return true
	}

	return consecutivePowers(seq, 2) || consecutivePowers(seq, 3)
}

// consecutivePowers 연속된 정수의 제곱(또는 세제곱) 수열인지 확인
func consecutivePowers(seq []int, exp int) bool {
	pow := func(n int) int {
		v := n
		for i := 1; i < exp; i++ {
			v *= n
		}
		return v
	}

	for start := 1; start <= 20; start++ {
		ok := true
		for i, v := range seq {
			if pow(start+i) != v {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func TestTowerBlocksGenerator(t *testing.T) {
	for i := 0; i < 20; i++ {
		input, answer, err := towerBlocksGenerator{}.Generate(nil)
		require.NoError(t, err)

		var blocks []int
		for _, line := range strings.Split(input, "\n") {
			n, err := strconv.Atoi(line)
			require.NoError(t, err)
			blocks = append(blocks, n)
		}

		// 모든 연속 구간 합의 최댓값을 직접 재계산
		expected := 0
		for lo := 0; lo < len(blocks); lo++ {
			sum := 0
			for hi := lo; hi < len(blocks); hi++ {
				sum += blocks[hi]
				if sum > expected {
					expected = sum
				}
			}
		}

		assert.Equal(t, strconv.Itoa(expected), answer)
	}
}

func TestFactory_Issue(t *testing.T) {
	factory := NewFactory()

	input, answer, err := factory.Issue(context.Background(), &models.Puzzle{
		GeneratorType: "crystal_sum",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, input)
	assert.NotEmpty(t, answer)
}

func TestFactory_IssueUnknownType(t *testing.T) {
	factory := NewFactory()

	_, _, err := factory.Issue(context.Background(), &models.Puzzle{
		GeneratorType: "bogus",
	})
	assert.Error(t, err)
}

func TestFactory_IssueCancelledContext(t *testing.T) {
	factory := NewFactory()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := factory.Issue(ctx, &models.Puzzle{GeneratorType: "crystal_sum"})
	assert.Error(t, err)
}

func TestFactory_IssueVariesPerCall(t *testing.T) {
	factory := NewFactory()
	p := &models.Puzzle{GeneratorType: "crystal_sum"}

	first, _, err := factory.Issue(context.Background(), p)
	require.NoError(t, err)
	second, _, err := factory.Issue(context.Background(), p)
	require.NoError(t, err)

	// 같은 퍼즐이라도 호출마다 다른 인스턴스
	assert.NotEqual(t, first, second)
}
