// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package tree

import (
	"context"
	"fmt"
	"sync"

	"code.bundlemart.io/earnings/logging"
	"code.bundlemart.io/earnings/metrics"
	"code.bundlemart.io/earnings/types"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"golang.org/x/exp/slices"
)

type Strategy string

const (
	StrategyAuto      Strategy = "auto"
	StrategyRecursive Strategy = "recursive"
	StrategyBulk      Strategy = "bulk"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyAuto:
		return StrategyAuto, nil
	case StrategyRecursive, StrategyBulk:
		return Strategy(s), nil
	default:
		return "", types.NewValidationError("unknown tree mode %q", s)
	}
}

// Builder reconstructs referral and placement trees from flat member
// records. Reads are not transactional: a member created while a tree is
// built may or may not show up.
type Builder struct {
	log     *logging.Logger
	members Members

	mu  sync.RWMutex
	cfg Config
}

func New(log *logging.Logger, cfg Config, members Members) *Builder {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	return &Builder{
		log:     log,
		members: members,
		cfg:     cfg,
	}
}

// ReloadConf updates the internal configuration.
func (b *Builder) ReloadConf(cfg Config) {
	b.log.Info("reloading configuration")
	if b.log.GetLevel() != cfg.Level.Get() {
		b.log.Info("updating log level",
			logging.String("old", b.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		b.log.SetLevel(cfg.Level.Get())
	}

	b.mu.Lock()
	b.cfg = cfg
	b.mu.Unlock()
}

func (b *Builder) config() Config {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cfg
}

// Hierarchy builds the referral tree under rootCode, picking the strategy
// from the subtree size. maxDepth <= 0 means unlimited, the root has depth 0.
func (b *Builder) Hierarchy(ctx context.Context, rootCode string, maxDepth int) (*Node, error) {
	return b.Build(ctx, rootCode, maxDepth, StrategyAuto)
}

func (b *Builder) Build(ctx context.Context, rootCode string, maxDepth int, strategy Strategy) (*Node, error) {
	cfg := b.config()
	if cfg.MaxDepth > 0 && (maxDepth <= 0 || maxDepth > cfg.MaxDepth) {
		maxDepth = cfg.MaxDepth
	}

	if strategy == StrategyAuto {
		n, err := b.members.CountByAncestor(ctx, rootCode)
		if err != nil {
			return nil, err
		}
		strategy = StrategyRecursive
		if n >= cfg.BulkThreshold {
			strategy = StrategyBulk
		}
		b.log.Debug("tree strategy selected",
			logging.MemberCode(rootCode),
			logging.Int("descendants", n),
			logging.String("strategy", string(strategy)),
		)
	}

	switch strategy {
	case StrategyRecursive:
		return b.BuildRecursive(ctx, rootCode, maxDepth)
	case StrategyBulk:
		return b.BuildBulk(ctx, rootCode, maxDepth)
	default:
		return nil, fmt.Errorf("unsupported tree strategy %q", strategy)
	}
}

// BuildRecursive resolves the children of each node with one query,
// stopping at maxDepth.
func (b *Builder) BuildRecursive(ctx context.Context, rootCode string, maxDepth int) (*Node, error) {
	defer metrics.StartTreeBuild(string(StrategyRecursive))()

	root, err := b.members.GetByCode(ctx, rootCode)
	if err != nil {
		return nil, err
	}
	visited := map[string]struct{}{root.Code: {}}

	var expand func(*Node) error
	expand = func(n *Node) error {
		if maxDepth > 0 && n.Depth >= maxDepth {
			return nil
		}
		children, err := b.members.ListByParent(ctx, n.Member.Code)
		if err != nil {
			return err
		}
		sortByID(children)
		for _, c := range children {
			if _, ok := visited[c.Code]; ok {
				b.log.Warn("member reached twice, ignoring", logging.MemberCode(c.Code))
				continue
			}
			visited[c.Code] = struct{}{}
			child := &Node{Member: c, Depth: n.Depth + 1, Children: []*Node{}}
			n.Children = append(n.Children, child)
			if err := expand(child); err != nil {
				return err
			}
		}
		return nil
	}

	node := &Node{Member: root, Children: []*Node{}}
	if err := expand(node); err != nil {
		return nil, err
	}
	return node, nil
}

// BuildBulk loads the whole subtree with a single query, links parents and
// children in memory, then prunes below maxDepth.
func (b *Builder) BuildBulk(ctx context.Context, rootCode string, maxDepth int) (*Node, error) {
	defer metrics.StartTreeBuild(string(StrategyBulk))()

	root, err := b.members.GetByCode(ctx, rootCode)
	if err != nil {
		return nil, err
	}
	descendants, err := b.members.ListByAncestor(ctx, rootCode)
	if err != nil {
		return nil, err
	}
	sortByID(descendants)

	byParent := make(map[string][]types.Member, len(descendants))
	for _, m := range descendants {
		byParent[m.Parent()] = append(byParent[m.Parent()], m)
	}

	node := &Node{Member: root, Children: []*Node{}}
	linked := 1
	queue := linkedlistqueue.New()
	queue.Enqueue(node)
	for !queue.Empty() {
		v, _ := queue.Dequeue()
		n := v.(*Node)
		for _, c := range byParent[n.Member.Code] {
			child := &Node{Member: c, Depth: n.Depth + 1, Children: []*Node{}}
			n.Children = append(n.Children, child)
			queue.Enqueue(child)
			linked++
		}
		delete(byParent, n.Member.Code)
	}
	if orphans := len(descendants) + 1 - linked; orphans > 0 {
		b.log.Warn("members with an ancestor chain not matching their parent links",
			logging.MemberCode(rootCode),
			logging.Int("orphans", orphans),
		)
	}

	prune(node, maxDepth)
	return node, nil
}

// prune drops every node deeper than maxDepth.
func prune(root *Node, maxDepth int) {
	if maxDepth <= 0 {
		return
	}
	queue := linkedlistqueue.New()
	queue.Enqueue(root)
	for !queue.Empty() {
		v, _ := queue.Dequeue()
		n := v.(*Node)
		if n.Depth >= maxDepth {
			n.Children = []*Node{}
			continue
		}
		for _, c := range n.Children {
			queue.Enqueue(c)
		}
	}
}

// Binary builds the placement tree under rootCode. Each node keeps the
// lowest ID child placed on each side, children without a placement are
// not part of this view and neither are their subtrees.
func (b *Builder) Binary(ctx context.Context, rootCode string, maxDepth int) (*BinaryNode, error) {
	h, err := b.Hierarchy(ctx, rootCode, maxDepth)
	if err != nil {
		return nil, err
	}
	return project(h), nil
}

func project(n *Node) *BinaryNode {
	bn := &BinaryNode{Member: n.Member, Depth: n.Depth}
	for _, c := range n.Children {
		switch c.Member.PlacementSide {
		case types.PlacementLeft:
			if bn.Left == nil {
				bn.Left = project(c)
			}
		case types.PlacementRight:
			if bn.Right == nil {
				bn.Right = project(c)
			}
		}
	}
	return bn
}

func sortByID(ms []types.Member) {
	slices.SortFunc(ms, func(a, b types.Member) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
}
