// Package kdbush is a static KD-tree over 2D points, sorted once on
// construction and queried by bounding box or radius.
package kdbush

import (
	"math"
)

const DefaultNodeSize = 64

type Point[T any] struct {
	X, Y float64
	Data T
}

type KDBush[T any] struct {
	NodeSize int
	Points   []Point[T]

	idxs   []int     // original indexes, in tree order
	coords []float64 // x,y pairs, in tree order
}

func NewBush[T any](points []Point[T], nodeSize int) *KDBush[T] {
	if nodeSize <= 0 {
		nodeSize = DefaultNodeSize
	}
	b := KDBush[T]{}
	b.buildIndex(points, nodeSize)
	return &b
}

func (bush *KDBush[T]) Len() int {
	return len(bush.idxs)
}

type span struct {
	left, right, axis int
}

// Range returns the indices of all points inside the closed bounding box.
func (bush *KDBush[T]) Range(minX, minY, maxX, maxY float64) []int {
	result := []int{}
	inside := func(x, y float64) bool {
		return x >= minX && x <= maxX && y >= minY && y <= maxY
	}

	bush.walk(
		func(i int) bool {
			if inside(bush.coords[2*i], bush.coords[2*i+1]) {
				result = append(result, bush.idxs[i])
			}
			return true
		},
		func(axis int, x, y float64) (goLeft, goRight bool) {
			if axis == 0 {
				return minX <= x, maxX >= x
			}
			return minY <= y, maxY >= y
		},
	)
	return result
}

// Within calls handler with the original index of every point at Euclidean
// distance <= radius from (qx, qy). Returning false from handler stops the walk.
func (bush *KDBush[T]) Within(qx, qy, radius float64, handler func(i int, p Point[T]) bool) {
	r2 := radius * radius

	bush.walk(
		func(i int) bool {
			if sqDist(bush.coords[2*i], bush.coords[2*i+1], qx, qy) <= r2 {
				idx := bush.idxs[i]
				return handler(idx, bush.Points[idx])
			}
			return true
		},
		func(axis int, x, y float64) (goLeft, goRight bool) {
			if axis == 0 {
				return qx-radius <= x, qx+radius >= x
			}
			return qy-radius <= y, qy+radius >= y
		},
	)
}

// Query returns the original indices of all points within radius of (qx, qy).
func (bush *KDBush[T]) Query(qx, qy, radius float64) []int {
	result := []int{}
	bush.Within(qx, qy, radius, func(i int, _ Point[T]) bool {
		result = append(result, i)
		return true
	})
	return result
}

// walk visits tree positions; visit gets a tree-order position and split
// decides which halves of a node may hold matches.
func (bush *KDBush[T]) walk(visit func(i int) bool, split func(axis int, x, y float64) (bool, bool)) {
	if len(bush.idxs) == 0 {
		return
	}

	stack := []span{{0, len(bush.idxs) - 1, 0}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.right-s.left <= bush.NodeSize {
			for i := s.left; i <= s.right; i++ {
				if !visit(i) {
					return
				}
			}
			continue
		}

		m := (s.left + s.right) / 2
		if !visit(m) {
			return
		}

		x := bush.coords[2*m]
		y := bush.coords[2*m+1]
		next := (s.axis + 1) % 2

		goLeft, goRight := split(s.axis, x, y)
		if goLeft {
			stack = append(stack, span{s.left, m - 1, next})
		}
		if goRight {
			stack = append(stack, span{m + 1, s.right, next})
		}
	}
}

func (bush *KDBush[T]) buildIndex(points []Point[T], nodeSize int) {
	bush.NodeSize = nodeSize
	bush.Points = points

	bush.idxs = make([]int, len(points))
	bush.coords = make([]float64, 2*len(points))

	for i, v := range points {
		bush.idxs[i] = i
		bush.coords[i*2] = v.X
		bush.coords[i*2+1] = v.Y
	}

	bush.sort(0, len(bush.idxs)-1, 0)
}

func (bush *KDBush[T]) sort(left, right, depth int) {
	if right-left <= bush.NodeSize {
		return
	}

	m := (left + right) / 2
	bush.selectK(m, left, right, depth%2)

	bush.sort(left, m-1, depth+1)
	bush.sort(m+1, right, depth+1)
}

// selectK is Floyd-Rivest selection: after it returns the k-th element on
// the given axis is in place, smaller ones to the left, larger to the right.
func (bush *KDBush[T]) selectK(k, left, right, axis int) {
	coords := bush.coords
	for right > left {
		if right-left > 600 {
			n := float64(right - left + 1)
			m := float64(k - left + 1)
			z := math.Log(n)
			s := 0.5 * math.Exp(2.0*z/3.0)
			sd := 0.5 * math.Sqrt(z*s*(n-s)/n)
			if m-n/2 < 0 {
				sd = -sd
			}
			newLeft := max(left, int(math.Floor(float64(k)-m*s/n+sd)))
			newRight := min(right, int(math.Floor(float64(k)+(n-m)*s/n+sd)))
			bush.selectK(k, newLeft, newRight, axis)
		}

		t := coords[2*k+axis]
		i := left
		j := right

		bush.swap(left, k)
		if coords[2*right+axis] > t {
			bush.swap(left, right)
		}

		for i < j {
			bush.swap(i, j)
			i++
			j--
			for coords[2*i+axis] < t {
				i++
			}
			for coords[2*j+axis] > t {
				j--
			}
		}

		if coords[2*left+axis] == t {
			bush.swap(left, j)
		} else {
			j++
			bush.swap(j, right)
		}

		if j <= k {
			left = j + 1
		}
		if k <= j {
			right = j - 1
		}
	}
}

func (bush *KDBush[T]) swap(i, j int) {
	bush.idxs[i], bush.idxs[j] = bush.idxs[j], bush.idxs[i]
	bush.coords[2*i], bush.coords[2*j] = bush.coords[2*j], bush.coords[2*i]
	bush.coords[2*i+1], bush.coords[2*j+1] = bush.coords[2*j+1], bush.coords[2*i+1]
}

func sqDist(ax, ay, bx, by float64) float64 {
	dx := ax - bx
	dy := ay - by
	return dx*dx + dy*dy
}
