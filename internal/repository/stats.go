package repository

import (
	"context"
	"fmt"
)

// TaskStatsResult holds scoped task counts.
type TaskStatsResult struct {
	Total      int
	ByStatus   map[string]int
	ByPriority map[string]int
}

// GetTaskStats retrieves task counts grouped by status and priority within
// the given ownership scope.
func (r *TaskRepository) GetTaskStats(ctx context.Context, scope ScopeFilter) (*TaskStatsResult, error) {
	result := &TaskStatsResult{
		ByStatus:   make(map[string]int),
		ByPriority: make(map[string]int),
	}

	for _, group := range []struct {
		column string
		counts map[string]int
	}{
		{"status", result.ByStatus},
		{"priority", result.ByPriority},
	} {
		qb := scope.apply(psql.
			Select(group.column, "COUNT(*)").
			From("tasks")).
			GroupBy(group.column)

		query, args, err := qb.ToSql()
		if err != nil {
			return nil, fmt.Errorf("build stats query for %s: %w", group.column, err)
		}

		rows, err := r.pool.Query(ctx, query, args...)
		if err != nil {
			return nil, unavailable("query task stats", err)
		}

		for rows.Next() {
			var value string
			var count int
			if err := rows.Scan(&value, &count); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan stats row: %w", err)
			}
			group.counts[value] = count
		}
		rows.Close()

		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate stats rows: %w", err)
		}
	}

	for _, count := range result.ByStatus {
		result.Total += count
	}

	return result, nil
}
