package retrieval

import "math"

// maximalMarginalRelevance picks up to k entry indices balancing similarity
// to the query against similarity to already-picked entries. lambda 1.0 is
// pure relevance, 0.0 is pure diversity.
func maximalMarginalRelevance(queryVec []float32, entries []IndexEntry, k int, lambda float64) []int {
	if k <= 0 || len(entries) == 0 {
		return nil
	}
	if k > len(entries) {
		k = len(entries)
	}

	queryScores := make([]float64, len(entries))
	for i, e := range entries {
		queryScores[i] = cosineSimilarity(queryVec, e.Vector)
	}

	selected := make([]int, 0, k)
	picked := make([]bool, len(entries))

	for len(selected) < k {
		best := -1
		bestScore := math.Inf(-1)

		// Ordered scan with a strict > keeps the lowest index on tied
		// scores, so equal candidates rank the same on every run.
		for i := range entries {
			if picked[i] {
				continue
			}

			maxRedundancy := 0.0
			for _, s := range selected {
				sim := cosineSimilarity(entries[i].Vector, entries[s].Vector)
				if sim > maxRedundancy {
					maxRedundancy = sim
				}
			}

			score := lambda*queryScores[i] - (1-lambda)*maxRedundancy
			if score > bestScore {
				bestScore = score
				best = i
			}
		}

		if best < 0 {
			break
		}
		selected = append(selected, best)
		picked[best] = true
	}

	return selected
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
