// Package cluster groups records by iterative centroid assignment over their
// TF-IDF vectors. Labels feed the offline ranker as a coarse topic feature.
package cluster

import (
	"math"
	"math/rand"
)

const defaultMaxIter = 100

// KMeans partitions vectors into K clusters with Lloyd's algorithm. The
// random source is seeded explicitly, so FitPredict is deterministic for a
// given seed and input.
type KMeans struct {
	K       int
	MaxIter int
	Seed    int64
}

// NewKMeans creates a KMeans with the given cluster count and seed.
func NewKMeans(k int, seed int64) *KMeans {
	return &KMeans{K: k, MaxIter: defaultMaxIter, Seed: seed}
}

// FitPredict partitions vectors into K clusters and returns one label per
// input row, in input order. Labels are drawn from {0..K-1}. When there are
// fewer rows than clusters, the surplus clusters stay empty and every row
// gets its own label.
func (km *KMeans) FitPredict(vectors [][]float64) []int {
	n := len(vectors)
	labels := make([]int, n)
	if n == 0 || km.K <= 1 {
		return labels
	}

	k := km.K
	if k > n {
		k = n
	}
	maxIter := km.MaxIter
	if maxIter <= 0 {
		maxIter = defaultMaxIter
	}

	// Seeded initial centroids: K distinct rows chosen by shuffled index.
	rng := rand.New(rand.NewSource(km.Seed))
	perm := rng.Perm(n)
	dims := len(vectors[0])
	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		centroids[i] = append([]float64(nil), vectors[perm[i]]...)
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, vec := range vectors {
			best := nearestCentroid(vec, centroids)
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		sums := make([][]float64, k)
		counts := make([]int, k)
		for i := range sums {
			sums[i] = make([]float64, dims)
		}
		for i, vec := range vectors {
			c := labels[i]
			counts[c]++
			for d, x := range vec {
				sums[c][d] += x
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				// Empty cluster keeps its previous centroid.
				continue
			}
			for d := range sums[c] {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}
	return labels
}

func nearestCentroid(vec []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		var dist float64
		for d, x := range vec {
			diff := x - centroid[d]
			dist += diff * diff
		}
		if dist < bestDist {
			bestDist = dist
			best = c
		}
	}
	return best
}
