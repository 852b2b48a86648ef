package sitemap

import (
	"hash/fnv"
	"math/rand"
	"sort"
)

// groupSeed keeps topic groups stable between exports.
const groupSeed = 42

var resolutions = []float64{1.0, 0.8, 0.6}

type neighbor struct {
	node   int
	weight float64
}

type linkGraph struct {
	adjacency   [][]neighbor
	degree      []float64
	loops       []float64
	totalWeight float64
}

type partitionState struct {
	community         []int
	communityDegree   []float64
	communityInternal []float64
	nodeDegree        []float64
	loops             []float64
	totalWeight       float64
}

type weightSet struct {
	weights map[int]float64
	keys    []int
}

// topicGroups clusters tutorials by their related links using Louvain
// modularity. Group ids are dense and start at zero.
func topicGroups(paths []string, edges []Edge) map[string]int {
	if len(paths) == 0 {
		return map[string]int{}
	}

	index := make(map[string]int, len(paths))
	for i, p := range paths {
		index[p] = i
	}

	graph := newLinkGraph(len(paths), index, edges)
	rng := rand.New(rand.NewSource(groupSeed))

	want := len(paths) / 3
	if want < 2 {
		want = 2
	}
	if want > len(paths) {
		want = len(paths)
	}

	var partition []int
	for _, resolution := range resolutions {
		partition = louvain(graph, resolution, rng)
		if distinct(partition) >= want {
			break
		}
	}

	if len(partition) == 0 || distinct(partition) < want {
		return hashedGroups(paths, want)
	}

	out := make(map[string]int, len(paths))
	for p, i := range index {
		out[p] = partition[i]
	}
	return out
}

func newLinkGraph(n int, index map[string]int, edges []Edge) linkGraph {
	adj := make([]map[int]float64, n)
	degree := make([]float64, n)
	loops := make([]float64, n)
	var total float64

	for _, e := range edges {
		src, okSrc := index[e.Source]
		dst, okDst := index[e.Target]
		if !okSrc || !okDst {
			continue
		}
		total++
		if src == dst {
			loops[src]++
			continue
		}
		if adj[src] == nil {
			adj[src] = make(map[int]float64)
		}
		if adj[dst] == nil {
			adj[dst] = make(map[int]float64)
		}
		adj[src][dst]++
		adj[dst][src]++
		degree[src]++
		degree[dst]++
	}

	return linkGraph{
		adjacency:   flatten(adj),
		degree:      degree,
		loops:       loops,
		totalWeight: total,
	}
}

// flatten turns weight maps into adjacency lists sorted by node, so a seeded
// shuffle always visits neighbours in the same order.
func flatten(adj []map[int]float64) [][]neighbor {
	out := make([][]neighbor, len(adj))
	for node, targets := range adj {
		if len(targets) == 0 {
			continue
		}
		list := make([]neighbor, 0, len(targets))
		for target, w := range targets {
			list = append(list, neighbor{node: target, weight: w})
		}
		sort.Slice(list, func(i, j int) bool { return list[i].node < list[j].node })
		out[node] = list
	}
	return out
}

func louvain(graph linkGraph, resolution float64, rng *rand.Rand) []int {
	if len(graph.adjacency) == 0 {
		return nil
	}

	state := newPartitionState(graph)
	var levels [][]int
	ws := &weightSet{weights: make(map[int]float64, 8)}

	for {
		moved := moveNodes(graph, state, ws, resolution, rng)
		partition := renumber(state.community)
		levels = append(levels, partition)
		if !moved {
			break
		}
		graph = collapse(partition, graph)
		state = newPartitionState(graph)
	}

	result := append([]int(nil), levels[0]...)
	for _, next := range levels[1:] {
		for i := range result {
			result[i] = next[result[i]]
		}
	}
	return renumber(result)
}

func newPartitionState(graph linkGraph) *partitionState {
	n := len(graph.adjacency)
	s := &partitionState{
		community:         make([]int, n),
		communityDegree:   make([]float64, n),
		communityInternal: make([]float64, n),
		nodeDegree:        graph.degree,
		loops:             graph.loops,
		totalWeight:       graph.totalWeight,
	}
	for i := 0; i < n; i++ {
		s.community[i] = i
		s.communityDegree[i] = graph.degree[i]
		s.communityInternal[i] = graph.loops[i]
	}
	return s
}

func moveNodes(graph linkGraph, s *partitionState, ws *weightSet, resolution float64, rng *rand.Rand) bool {
	n := len(graph.adjacency)
	order := rng.Perm(n)

	movedAny := false
	for improved := true; improved; {
		improved = false
		for _, node := range order {
			current := s.community[node]
			degree := s.nodeDegree[node]
			ws.collect(node, graph, s)
			s.remove(node, current, ws.get(current))

			best := current
			bestGain := 0.0
			m2 := 2 * s.totalWeight
			if degree > 0 && m2 > 0 {
				for _, c := range ws.keys {
					gain := ws.weights[c] - resolution*s.communityDegree[c]*degree/m2
					if gain > bestGain {
						bestGain = gain
						best = c
					}
				}
			}

			s.insert(node, best, ws.get(best))
			if best != current {
				improved = true
				movedAny = true
			}
		}
	}
	return movedAny
}

func (s *partitionState) remove(node, community int, weight float64) {
	s.communityDegree[community] -= s.nodeDegree[node]
	s.communityInternal[community] -= 2*weight + s.loops[node]
	s.community[node] = -1
}

func (s *partitionState) insert(node, community int, weight float64) {
	s.community[node] = community
	s.communityDegree[community] += s.nodeDegree[node]
	s.communityInternal[community] += 2*weight + s.loops[node]
}

// collapse builds the graph whose nodes are the communities of partition.
func collapse(partition []int, graph linkGraph) linkGraph {
	n := 0
	for _, c := range partition {
		if c+1 > n {
			n = c + 1
		}
	}

	adj := make([]map[int]float64, n)
	degree := make([]float64, n)
	loops := make([]float64, n)
	var total float64

	for node, neighbors := range graph.adjacency {
		a := partition[node]
		for _, nb := range neighbors {
			if nb.node < node {
				continue
			}
			b := partition[nb.node]
			if a == b {
				loops[a] += nb.weight
				degree[a] += 2 * nb.weight
			} else {
				if adj[a] == nil {
					adj[a] = make(map[int]float64)
				}
				if adj[b] == nil {
					adj[b] = make(map[int]float64)
				}
				adj[a][b] += nb.weight
				adj[b][a] += nb.weight
				degree[a] += nb.weight
				degree[b] += nb.weight
			}
			total += nb.weight
		}
	}

	return linkGraph{adjacency: flatten(adj), degree: degree, loops: loops, totalWeight: total}
}

func (ws *weightSet) collect(node int, graph linkGraph, s *partitionState) {
	for _, k := range ws.keys {
		delete(ws.weights, k)
	}
	ws.keys = ws.keys[:0]
	for _, nb := range graph.adjacency[node] {
		if nb.node == node {
			continue
		}
		c := s.community[nb.node]
		if c == -1 {
			continue
		}
		if _, ok := ws.weights[c]; !ok {
			ws.keys = append(ws.keys, c)
		}
		ws.weights[c] += nb.weight
	}
}

func (ws *weightSet) get(c int) float64 {
	return ws.weights[c]
}

func renumber(partition []int) []int {
	ids := make(map[int]int, len(partition))
	out := make([]int, len(partition))
	for i, c := range partition {
		id, ok := ids[c]
		if !ok {
			id = len(ids)
			ids[c] = id
		}
		out[i] = id
	}
	return out
}

func distinct(values []int) int {
	seen := make(map[int]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// hashedGroups spreads paths over count buckets when the link graph is too
// sparse to cluster.
func hashedGroups(paths []string, count int) map[string]int {
	sorted := append([]string(nil), paths...)
	sort.Strings(sorted)

	buckets := make([]int, len(sorted))
	h := fnv.New32a()
	for i, p := range sorted {
		h.Reset()
		_, _ = h.Write([]byte(p))
		buckets[i] = int(h.Sum32() % uint32(count))
	}
	buckets = renumber(buckets)

	out := make(map[string]int, len(sorted))
	for i, p := range sorted {
		out[p] = buckets[i]
	}
	return out
}
