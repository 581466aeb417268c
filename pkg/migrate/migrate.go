package migrate

import (
	"encoding/json"
	"fmt"
)

type step func(tree map[string]any) error

// steps maps each adjacent (from, to) version pair to its rewrite.
var steps = map[[2]string]step{
	{V1_0_0, V1_1_0Beta1}: rewriteToV1_1_0Beta1,
	{V1_1_0Beta1, V1_1_0}: noopStep,
}

// Tree migrates a generic JSON tree (as produced by json.Unmarshal into
// map[string]any) from one stac_version to another, applying every step on
// the path between them in order and finally overwriting stac_version.
// Migrating an ItemCollection's features is the caller's responsibility
// (TreeItemCollection recurses automatically).
func Tree(tree map[string]any, from, to string) (map[string]any, error) {
	if from == to {
		return tree, nil
	}

	fromIdx, toIdx := indexOf(from), indexOf(to)
	if fromIdx < 0 || toIdx < 0 {
		return nil, &ErrUnsupportedMigration{From: from, To: to}
	}
	cmp, err := compare(from, to)
	if err != nil || cmp > 0 {
		return nil, &ErrUnsupportedMigration{From: from, To: to}
	}

	for i := fromIdx; i < toIdx; i++ {
		key := [2]string{orderedVersions[i], orderedVersions[i+1]}
		fn, ok := steps[key]
		if !ok {
			return nil, &ErrUnsupportedMigration{From: from, To: to}
		}
		if err := fn(tree); err != nil {
			return nil, fmt.Errorf("migrate step %s -> %s: %w", key[0], key[1], err)
		}
	}

	tree["stac_version"] = to
	return tree, nil
}

// TreeItemCollection migrates an ItemCollection-shaped tree, recursing into
// every element of "features".
func TreeItemCollection(tree map[string]any, from, to string) (map[string]any, error) {
	if from == to {
		return tree, nil
	}
	features, _ := tree["features"].([]any)
	for i, f := range features {
		item, ok := f.(map[string]any)
		if !ok {
			continue
		}
		migrated, err := Tree(item, from, to)
		if err != nil {
			return nil, fmt.Errorf("migrating feature %d: %w", i, err)
		}
		features[i] = migrated
	}
	tree["features"] = features
	return tree, nil
}

// JSON migrates raw JSON bytes from one stac_version to another, decoding
// into a generic tree, applying Tree, and re-encoding.
func JSON(data []byte, from, to string) ([]byte, error) {
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decoding tree for migration: %w", err)
	}
	migrated, err := Tree(tree, from, to)
	if err != nil {
		return nil, err
	}
	return json.Marshal(migrated)
}
