package cave

import (
	"container/heap"
)

// pathNode is a node in the A* search.
type pathNode struct {
	X, Y   int
	G      int // Steps from start
	F      int // G + Manhattan distance to goal
	Parent *pathNode
	Index  int // Index in heap
}

// pathHeap implements a priority queue for A*.
type pathHeap []*pathNode

func (h pathHeap) Len() int { return len(h) }
func (h pathHeap) Less(i, j int) bool {
	if h[i].F == h[j].F {
		return h[i].G > h[j].G
	}
	return h[i].F < h[j].F
}
func (h pathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].Index = i
	h[j].Index = j
}

func (h *pathHeap) Push(x any) {
	node := x.(*pathNode)
	node.Index = len(*h)
	*h = append(*h, node)
}

func (h *pathHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.Index = -1
	*h = old[:n-1]
	return node
}

// FindPath returns a shortest 4-connected path of open cells from start to
// goal, both inclusive. It returns nil when either end is not open or the
// cells are not connected.
func FindPath(g *Grid, start, goal Point) []Point {
	if !g.IsOpen(start.X, start.Y) || !g.IsOpen(goal.X, goal.Y) {
		return nil
	}

	key := func(x, y int) int { return y*g.Width + x }

	open := &pathHeap{}
	closed := make([]bool, len(g.Cells))
	nodes := make(map[int]*pathNode)

	first := &pathNode{X: start.X, Y: start.Y, F: manhattan(start, goal)}
	heap.Push(open, first)
	nodes[key(start.X, start.Y)] = first

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if current.X == goal.X && current.Y == goal.Y {
			return reconstructPath(current)
		}
		closed[key(current.X, current.Y)] = true

		for _, d := range orthogonal {
			nx, ny := current.X+d.X, current.Y+d.Y
			if !g.IsOpen(nx, ny) || closed[key(nx, ny)] {
				continue
			}

			steps := current.G + 1
			neighbour, seen := nodes[key(nx, ny)]
			if !seen {
				neighbour = &pathNode{
					X:      nx,
					Y:      ny,
					G:      steps,
					F:      steps + manhattan(Point{nx, ny}, goal),
					Parent: current,
				}
				nodes[key(nx, ny)] = neighbour
				heap.Push(open, neighbour)
			} else if steps < neighbour.G {
				neighbour.F -= neighbour.G - steps
				neighbour.G = steps
				neighbour.Parent = current
				heap.Fix(open, neighbour.Index)
			}
		}
	}

	return nil
}

func reconstructPath(end *pathNode) []Point {
	var path []Point
	for n := end; n != nil; n = n.Parent {
		path = append(path, Point{n.X, n.Y})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func manhattan(a, b Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
