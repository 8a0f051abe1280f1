// Package index holds static spatial indexes over the projected coordinates
// of a point set.
package index

import (
	"fmt"

	"github.com/royalcat/rdensity/geomodel"
	"github.com/royalcat/rdensity/kdbush"
)

// Index answers radius queries with original point indices. It must never
// miss a point within r; extra points slightly outside r are allowed.
type Index interface {
	QueryRadius(x, y, r float64) []int
	Len() int
}

const (
	KindKDBush = "kdbush"
	KindQTree  = "qtree"
)

func New(kind string, points geomodel.PointSet) (Index, error) {
	switch kind {
	case KindKDBush, "":
		return NewKDBush(points), nil
	case KindQTree:
		return NewQTree(points), nil
	}
	return nil, fmt.Errorf("unknown index kind %q", kind)
}

type KDBushIndex struct {
	bush *kdbush.KDBush[struct{}]
}

var _ Index = (*KDBushIndex)(nil)

func NewKDBush(points geomodel.PointSet) *KDBushIndex {
	kp := make([]kdbush.Point[struct{}], points.Len())
	for i := range kp {
		kp[i] = kdbush.Point[struct{}]{X: points.X[i], Y: points.Y[i]}
	}
	return &KDBushIndex{bush: kdbush.NewBush(kp, kdbush.DefaultNodeSize)}
}

func (k *KDBushIndex) QueryRadius(x, y, r float64) []int {
	return k.bush.Query(x, y, r)
}

func (k *KDBushIndex) Len() int {
	return k.bush.Len()
}
