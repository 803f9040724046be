package framework

import (
	"math"
	"sort"
)

// Deduplicate collapses individuals whose fitness vectors are identical
// after rounding to the given number of significant figures. The first
// individual with a given rounded vector is kept as the representative and
// its fitness is replaced by the rounded value; input order is otherwise
// preserved. Rounding absorbs solver noise so that genomes with effectively
// equal objectives are ranked as one point.
func Deduplicate(population []*Individual, digits int) []*Individual {
	seen := make(map[string]bool, len(population))
	out := make([]*Individual, 0, len(population))
	for _, ind := range population {
		rounded := ind.Fitness.Round(digits)
		key := rounded.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		ind.Fitness = rounded
		out = append(out, ind)
	}
	return out
}

// NonDominatedSort partitions the population into Pareto fronts and assigns
// every individual its 1-based front index (front 1 = non-dominated set).
// Front indices are contiguous; an empty population yields no fronts.
func NonDominatedSort(population []*Individual) [][]*Individual {
	if len(population) == 0 {
		return nil
	}

	var fronts [][]*Individual
	dominated := make(map[int][]int)
	domCount := make([]int, len(population))

	// Calculate domination for each individual
	for i := 0; i < len(population); i++ {
		dominated[i] = []int{}
		for j := 0; j < len(population); j++ {
			if i != j {
				if population[i].Fitness.Dominates(population[j].Fitness) {
					dominated[i] = append(dominated[i], j)
				} else if population[j].Fitness.Dominates(population[i].Fitness) {
					domCount[i]++
				}
			}
		}
	}

	// Find first front
	currentFront := []*Individual{}
	currentFrontIndices := []int{}
	for i := 0; i < len(population); i++ {
		if domCount[i] == 0 {
			population[i].Front = 1
			currentFront = append(currentFront, population[i])
			currentFrontIndices = append(currentFrontIndices, i)
		}
	}
	fronts = append(fronts, currentFront)

	// Find subsequent fronts
	frontIndex := 1
	for len(currentFront) > 0 {
		nextFront := []*Individual{}
		nextFrontIndices := []int{}
		for _, idx := range currentFrontIndices {
			for _, dominatedIdx := range dominated[idx] {
				domCount[dominatedIdx]--
				if domCount[dominatedIdx] == 0 {
					population[dominatedIdx].Front = frontIndex + 1
					nextFront = append(nextFront, population[dominatedIdx])
					nextFrontIndices = append(nextFrontIndices, dominatedIdx)
				}
			}
		}
		frontIndex++
		if len(nextFront) > 0 {
			fronts = append(fronts, nextFront)
		}
		currentFront = nextFront
		currentFrontIndices = nextFrontIndices
	}

	return fronts
}

// CrowdingDistance assigns a diversity score to every individual in a
// front. For each objective the front is sorted by that objective and each
// individual accumulates its normalized neighbor gap; individuals holding
// the minimum or maximum value of any dimension score +Inf, as does the
// whole front when a dimension has zero width (all values tied).
func CrowdingDistance(front []*Individual) {
	if len(front) == 0 {
		return
	}
	if len(front) <= 2 {
		for i := range front {
			front[i].Crowding = math.Inf(1)
		}
		return
	}

	numObjectives := len(front[0].Fitness)
	for i := range front {
		front[i].Crowding = 0
	}

	for m := 0; m < numObjectives; m++ {
		// Sort by each objective
		sort.SliceStable(front, func(i, j int) bool {
			return front[i].Fitness[m] < front[j].Fitness[m]
		})

		lo := front[0].Fitness[m]
		hi := front[len(front)-1].Fitness[m]

		objectiveRange := hi - lo
		if objectiveRange == 0 {
			// Zero width: no strictly-inside neighbor exists, every
			// member is a boundary point for this dimension.
			for i := range front {
				front[i].Crowding = math.Inf(1)
			}
			continue
		}

		// Boundary points, including ties on the extreme values, go to
		// infinity.
		for i := range front {
			if front[i].Fitness[m] == lo || front[i].Fitness[m] == hi {
				front[i].Crowding = math.Inf(1)
			}
		}

		// Calculate distance for intermediate points
		for i := 1; i < len(front)-1; i++ {
			front[i].Crowding += (front[i+1].Fitness[m] - front[i-1].Fitness[m]) / objectiveRange
		}
	}
}

// SortByPreference orders individuals by ascending front and, within a
// front, by descending crowding distance. The sort is stable so that equal
// keys keep their input order and repeated runs stay reproducible.
func SortByPreference(population []*Individual) {
	sort.SliceStable(population, func(i, j int) bool {
		if population[i].Front != population[j].Front {
			return population[i].Front < population[j].Front
		}
		return population[i].Crowding > population[j].Crowding
	})
}
