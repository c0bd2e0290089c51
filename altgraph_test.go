package gfase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	gfase "github.com/jzhang-dev/gfase-maxcut-solver"
)

// AltComponentSuite groups tests for alt-component merging and the
// bipartite invariant AddAlt must preserve.
type AltComponentSuite struct {
	suite.Suite
	g *gfase.Graph
}

func (s *AltComponentSuite) SetupTest() {
	s.g = gfase.NewGraph()
	for i := int32(1); i <= 6; i++ {
		s.g.TryInsertNode(i)
	}
}

// TestAddAltTwoWaySymmetric: a direct alt pair lands on opposite sides.
func (s *AltComponentSuite) TestAddAltTwoWaySymmetric() {
	require.NoError(s.T(), s.g.AddAlt(1, 2))
	same, err := s.g.OfSameComponentSide(1, 2)
	require.NoError(s.T(), err)
	require.False(s.T(), same, "direct alt pair must sit on opposite sides")

	sameComponent, err := s.g.OfSameComponent(1, 2)
	require.NoError(s.T(), err)
	require.True(s.T(), sameComponent)
}

// TestAddAltMergesTransitively: a-b and c-d alts, then b-c alt, merges
// all four into one component with all-vs-all connectivity.
func (s *AltComponentSuite) TestAddAltMergesTransitively() {
	require.NoError(s.T(), s.g.AddAlt(1, 2))
	require.NoError(s.T(), s.g.AddAlt(3, 4))
	require.NoError(s.T(), s.g.AddAlt(2, 3))

	comp, err := s.g.GetAltComponent(1)
	require.NoError(s.T(), err)
	require.Len(s.T(), comp.Members(), 4)

	// All-vs-all: 1 and 4 must now be direct alts too.
	var found bool
	s.g.ForEachAlt(func(a, b int32) {
		if (a == 1 && b == 4) || (a == 4 && b == 1) {
			found = true
		}
	})
	require.True(s.T(), found, "merging components must establish all-vs-all connectivity")
}

// TestAddAltRemovesContactWeightByDefault: AddAlt's default policy drops
// any existing contact edge between the newly-merged pair.
func (s *AltComponentSuite) TestAddAltRemovesContactWeightByDefault() {
	require.NoError(s.T(), s.g.TryInsertEdge(1, 2, 99))
	require.NoError(s.T(), s.g.AddAlt(1, 2))
	require.False(s.T(), s.g.HasEdge(1, 2), "default AddAlt policy removes contact weight between alts")
}

// TestAddAltWithPolicyKeepsWeight: opting out of removeWeights preserves
// the contact edge.
func (s *AltComponentSuite) TestAddAltWithPolicyKeepsWeight() {
	require.NoError(s.T(), s.g.TryInsertEdge(1, 2, 99))
	require.NoError(s.T(), s.g.AddAltWithPolicy(1, 2, false))
	require.True(s.T(), s.g.HasEdge(1, 2))
}

// TestAddAltAssignsOppositePartitions: merging two components must leave
// every member labeled, not just bipartitioned structurally (I4).
func (s *AltComponentSuite) TestAddAltAssignsOppositePartitions() {
	require.NoError(s.T(), s.g.AddAlt(1, 2))
	require.NoError(s.T(), s.g.AddAlt(3, 4))
	require.NoError(s.T(), s.g.AddAlt(2, 3))

	n1, _ := s.g.GetNode(1)
	n2, _ := s.g.GetNode(2)
	n3, _ := s.g.GetNode(3)
	n4, _ := s.g.GetNode(4)
	require.NotZero(s.T(), n1.Partition)
	require.NotZero(s.T(), n2.Partition)
	require.NotZero(s.T(), n3.Partition)
	require.NotZero(s.T(), n4.Partition)
	require.Equal(s.T(), n1.Partition, n3.Partition, "1 and 3 land on the same side of the merged component")
	require.Equal(s.T(), n2.Partition, n4.Partition, "2 and 4 land on the same side of the merged component")
	require.NotEqual(s.T(), n1.Partition, n2.Partition)
}

// TestSetPartitionPropagatesAcrossComponent: setting one member's
// partition must relabel the whole alt component, not just that node.
func (s *AltComponentSuite) TestSetPartitionPropagatesAcrossComponent() {
	require.NoError(s.T(), s.g.AddAlt(1, 2))
	require.NoError(s.T(), s.g.SetPartition(1, 1))

	n1, _ := s.g.GetNode(1)
	n2, _ := s.g.GetNode(2)
	require.EqualValues(s.T(), 1, n1.Partition)
	require.EqualValues(s.T(), -1, n2.Partition)

	require.NoError(s.T(), s.g.SetPartition(2, 1))
	n1, _ = s.g.GetNode(1)
	n2, _ = s.g.GetNode(2)
	require.EqualValues(s.T(), -1, n1.Partition)
	require.EqualValues(s.T(), 1, n2.Partition)
}

// TestAddAltRejectsSelfPair.
func (s *AltComponentSuite) TestAddAltRejectsSelfPair() {
	err := s.g.AddAlt(1, 1)
	require.True(s.T(), errors.Is(err, gfase.ErrInvalidArgument))
}

// TestSetPartitionForbidsZeroOnAltNode.
func (s *AltComponentSuite) TestSetPartitionForbidsZeroOnAltNode() {
	require.NoError(s.T(), s.g.AddAlt(1, 2))
	err := s.g.SetPartition(1, 0)
	require.True(s.T(), errors.Is(err, gfase.ErrInvalidPartition))
}

// TestSetPartitionComponentPropagatesOppositeLabels.
func (s *AltComponentSuite) TestSetPartitionComponentPropagatesOppositeLabels() {
	require.NoError(s.T(), s.g.AddAlt(1, 2))
	comp, err := s.g.GetAltComponent(1)
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.g.SetPartitionComponent(comp, 1))

	n1, _ := s.g.GetNode(1)
	n2, _ := s.g.GetNode(2)
	require.NotEqual(s.T(), n1.Partition, n2.Partition)
}

// TestValidateAltsDetectsViolation builds a component whose direct alt
// pair has been forced onto the same side and checks ValidateAlts
// reports it.
func (s *AltComponentSuite) TestValidateAltsDetectsViolation() {
	require.NoError(s.T(), s.g.AddAlt(1, 2))
	n1, _ := s.g.GetNode(1)
	n2, _ := s.g.GetNode(2)
	n1.Partition = 1
	n2.Partition = 1 // force both onto the same side, bypassing SetPartition

	err := s.g.ValidateAlts()
	require.True(s.T(), errors.Is(err, gfase.ErrInvariantViolation))
}

// TestForEachDoubleAltFindsSharedNeighbor.
func (s *AltComponentSuite) TestForEachDoubleAltFindsSharedNeighbor() {
	require.NoError(s.T(), s.g.AddAlt(1, 2))
	require.NoError(s.T(), s.g.AddAlt(1, 3))

	var pairs [][2]int32
	s.g.ForEachDoubleAlt(func(a, b, c int32) {
		pairs = append(pairs, [2]int32{a, b})
	})
	require.NotEmpty(s.T(), pairs)
}

func TestAltComponentSuite(t *testing.T) {
	suite.Run(t, new(AltComponentSuite))
}

func TestGetAltComponentRepresentativesSkipsSingletons(t *testing.T) {
	g := gfase.NewGraph()
	for i := int32(1); i <= 3; i++ {
		g.TryInsertNode(i)
	}
	if err := g.AddAlt(1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reps := g.GetAltComponentRepresentatives()
	if len(reps) != 1 {
		t.Fatalf("expected exactly one multi-member component, got %d", len(reps))
	}
}
