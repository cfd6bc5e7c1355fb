package puzzle

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// crystalSumGenerator 3 또는 5의 배수의 합 구하기
type crystalSumGenerator struct{}

func (crystalSumGenerator) Generate(params map[string]int) (string, string, error) {
	minCount := param(params, "min_count", 50)
	maxCount := param(params, "max_count", 100)
	rangeVal := param(params, "range", 1000)

	count := minCount + rand.Intn(maxCount-minCount+1)
	numbers := make([]string, count)

	total := 0
	for i := 0; i < count; i++ {
		n := 1 + rand.Intn(rangeVal)
		if n%3 == 0 || n%5 == 0 {
			total += n
		}
		numbers[i] = strconv.Itoa(n)
	}

	return strings.Join(numbers, "\n"), strconv.Itoa(total), nil
}

// patternCounterGenerator 텍스트 내 패턴 등장 횟수 세기 (겹침 포함)
type patternCounterGenerator struct{}

func (patternCounterGenerator) Generate(params map[string]int) (string, string, error) {
	textLength := param(params, "text_length", 500)
	patternLength := param(params, "pattern_length", 5)

	pattern := randomLower(patternLength)

	// 알려진 횟수만큼 패턴을 심어가며 텍스트 구성
	var b strings.Builder
	occurrences := 5 + rand.Intn(11)
	remaining := textLength

	for i := 0; i < occurrences; i++ {
		if remaining > patternLength {
			fillerMax := remaining - patternLength
			if fillerMax > 30 {
				fillerMax = 30
			}
			if fillerMax >= 5 {
				filler := 5 + rand.Intn(fillerMax-4)
				b.WriteString(randomLower(filler))
				remaining -= filler
			}
		}
		b.WriteString(pattern)
		remaining -= patternLength
	}
	if remaining > 0 {
		b.WriteString(randomLower(remaining))
	}

	text := b.String()

	// 겹치는 등장까지 전부 카운트
	count := 0
	for i := 0; i+len(pattern) <= len(text); i++ {
		if text[i:i+len(pattern)] == pattern {
			count++
		}
	}

	input := fmt.Sprintf("Pattern: %s\nText:\n%s", pattern, text)
	return input, strconv.Itoa(count), nil
}

// gridPathGenerator 좌상단에서 우하단까지 (오른쪽/아래 이동만) 최대 합 경로
type gridPathGenerator struct{}

func (gridPathGenerator) Generate(params map[string]int) (string, string, error) {
	rows := param(params, "rows", 10)
	cols := param(params, "cols", 10)
	maxValue := param(params, "max_value", 100)

	grid := make([][]int, rows)
	for i := range grid {
		grid[i] = make([]int, cols)
		for j := range grid[i] {
			grid[i][j] = 1 + rand.Intn(maxValue)
		}
	}

	// DP로 최대 경로 합 계산
	dp := make([][]int, rows)
	for i := range dp {
		dp[i] = make([]int, cols)
	}
	dp[0][0] = grid[0][0]
	for j := 1; j < cols; j++ {
		dp[0][j] = dp[0][j-1] + grid[0][j]
	}
	for i := 1; i < rows; i++ {
		dp[i][0] = dp[i-1][0] + grid[i][0]
	}
	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			best := dp[i-1][j]
			if dp[i][j-1] > best {
				best = dp[i][j-1]
			}
			dp[i][j] = best + grid[i][j]
		}
	}

	lines := make([]string, rows)
	for i, row := range grid {
		cells := make([]string, cols)
		for j, v := range row {
			cells[j] = strconv.Itoa(v)
		}
		lines[i] = strings.Join(cells, " ")
	}

	return strings.Join(lines, "\n"), strconv.Itoa(dp[rows-1][cols-1]), nil
}

// sequenceFinderGenerator 수열의 다음 세 항 찾기
type sequenceFinderGenerator struct{}

func (sequenceFinderGenerator) Generate(params map[string]int) (string, string, error) {
	length := param(params, "sequence_length", 8)
	total := length + 3

	var sequence []int
	switch rand.Intn(5) {
	case 0: // 등차수열
		start := 1 + rand.Intn(20)
		diff := 2 + rand.Intn(9)
		for i := 0; i < total; i++ {
			sequence = append(sequence, start+i*diff)
		}
	case 1: // 등비수열
		start := 2 + rand.Intn(4)
		ratio := 2 + rand.Intn(2)
		term := start
		for i := 0; i < total; i++ {
			sequence = append(sequence, term)
			term *= ratio
		}
	case 2: // 피보나치형
		a, b := 1+rand.Intn(5), 1+rand.Intn(5)
		sequence = append(sequence, a, b)
		for len(sequence) < total {
			sequence = append(sequence, sequence[len(sequence)-1]+sequence[len(sequence)-2])
		}
	case 3: // 제곱수
		start := 1 + rand.Intn(10)
		for i := 0; i < total; i++ {
			sequence = append(sequence, (start+i)*(start+i))
		}
	default: // 세제곱수
		start := 1 + rand.Intn(5)
		for i := 0; i < total; i++ {
			n := start + i
			sequence = append(sequence, n*n*n)
		}
	}

	return joinInts(sequence[:length]), joinInts(sequence[length : length+3]), nil
}

// towerBlocksGenerator 블록 제거로 얻는 최대 가치 (최대 연속 부분합)
type towerBlocksGenerator struct{}

func (towerBlocksGenerator) Generate(params map[string]int) (string, string, error) {
	height := param(params, "height", 15)
	maxValue := param(params, "max_value", 50)

	blocks := make([]int, height)
	lines := make([]string, height)
	for i := range blocks {
		blocks[i] = rand.Intn(maxValue+maxValue/2+1) - maxValue/2
		lines[i] = strconv.Itoa(blocks[i])
	}

	// Kadane
	maxSum, currentSum := 0, 0
	for _, v := range blocks {
		currentSum += v
		if currentSum < 0 {
			currentSum = 0
		}
		if currentSum > maxSum {
			maxSum = currentSum
		}
	}

	return strings.Join(lines, "\n"), strconv.Itoa(maxSum), nil
}

func randomLower(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
