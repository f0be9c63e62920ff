package index

import "math"

// mmrLambda balances query relevance against diversity. 0.5 weighs
// both equally.
const mmrLambda = 0.5

type candidate struct {
	chunk     Chunk
	embedding []float32
	rank      int
}

// rerankMMR selects up to k candidates by maximal marginal relevance:
// each pick maximizes lambda*sim(query, c) - (1-lambda)*max sim(c,
// selected). Ties keep the candidate with the better original rank,
// which is the earlier element since candidates arrive rank-ordered.
func rerankMMR(candidates []candidate, query []float32, k int) []candidate {
	if len(candidates) <= k {
		return candidates
	}

	relevance := make([]float64, len(candidates))
	for i, c := range candidates {
		relevance[i] = cosineSimilarity(query, c.embedding)
	}

	selected := make([]candidate, 0, k)
	chosen := make([]bool, len(candidates))

	for len(selected) < k {
		best := -1
		bestScore := math.Inf(-1)
		for i, c := range candidates {
			if chosen[i] {
				continue
			}
			score := mmrLambda * relevance[i]
			if len(selected) > 0 {
				maxSim := math.Inf(-1)
				for _, s := range selected {
					if sim := cosineSimilarity(c.embedding, s.embedding); sim > maxSim {
						maxSim = sim
					}
				}
				score -= (1 - mmrLambda) * maxSim
			}
			if score > bestScore {
				best = i
				bestScore = score
			}
		}
		if best < 0 {
			break
		}
		chosen[best] = true
		selected = append(selected, candidates[best])
	}

	return selected
}

// cosineSimilarity returns the cosine of the angle between a and b,
// or 0 when either vector is zero or the lengths differ.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
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
