package trainer

import "sort"

// fitBoosted fits a gradient-boosted ensemble of depth-limited regression
// trees to target by least squares. Each round fits a tree to the current
// residuals and the ensemble steps toward it by the learning rate.
func fitBoosted(features [][]float64, target []float64, rounds int, learningRate float64, maxDepth int) *RankerModel {
	base := mean(target)
	model := &RankerModel{
		Features:     FeatureNames,
		Base:         base,
		LearningRate: learningRate,
		Trees:        make([]*treeNode, 0, rounds),
	}

	pred := make([]float64, len(target))
	for i := range pred {
		pred[i] = base
	}
	residual := make([]float64, len(target))
	indices := make([]int, len(target))
	for i := range indices {
		indices[i] = i
	}

	for round := 0; round < rounds; round++ {
		for i := range target {
			residual[i] = target[i] - pred[i]
		}
		tree := buildTree(features, residual, indices, maxDepth)
		model.Trees = append(model.Trees, tree)
		for i := range pred {
			pred[i] += learningRate * tree.predict(features[i])
		}
	}
	return model
}

// buildTree grows a regression tree over the rows in indices, splitting on
// the feature/threshold pair that most reduces squared error.
func buildTree(features [][]float64, target []float64, indices []int, depth int) *treeNode {
	if depth <= 0 || len(indices) < 2 {
		return &treeNode{Leaf: true, Value: meanAt(target, indices)}
	}

	feature, threshold, ok := bestSplit(features, target, indices)
	if !ok {
		return &treeNode{Leaf: true, Value: meanAt(target, indices)}
	}

	var left, right []int
	for _, i := range indices {
		if features[i][feature] < threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      buildTree(features, target, left, depth-1),
		Right:     buildTree(features, target, right, depth-1),
	}
}

// bestSplit scans every feature's midpoints between consecutive distinct
// values and returns the split minimizing total squared error. ok is false
// when no split separates the rows.
func bestSplit(features [][]float64, target []float64, indices []int) (feature int, threshold float64, ok bool) {
	baseSSE := sseAt(target, indices)
	bestSSE := baseSSE
	nFeatures := len(features[indices[0]])

	for f := 0; f < nFeatures; f++ {
		sorted := append([]int(nil), indices...)
		sort.Slice(sorted, func(a, b int) bool {
			return features[sorted[a]][f] < features[sorted[b]][f]
		})
		for cut := 1; cut < len(sorted); cut++ {
			lo := features[sorted[cut-1]][f]
			hi := features[sorted[cut]][f]
			if lo == hi {
				continue
			}
			mid := (lo + hi) / 2
			sse := sseAt(target, sorted[:cut]) + sseAt(target, sorted[cut:])
			if sse < bestSSE {
				bestSSE = sse
				feature = f
				threshold = mid
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func meanAt(target []float64, indices []int) float64 {
	if len(indices) == 0 {
		return 0
	}
	var sum float64
	for _, i := range indices {
		sum += target[i]
	}
	return sum / float64(len(indices))
}

func sseAt(target []float64, indices []int) float64 {
	m := meanAt(target, indices)
	var sse float64
	for _, i := range indices {
		d := target[i] - m
		sse += d * d
	}
	return sse
}
