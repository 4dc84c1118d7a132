package trainingplan

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gymmax/gymmax/internal/platform/db"
	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for training plans
// and their nested plan items and exercises.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListByPage returns one page of plans with items and exercises loaded.
func (r *Repository) ListByPage(ctx context.Context, page, perPage int) ([]TrainingPlan, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, trainer_name, member_id FROM training_plans
		ORDER BY id
		LIMIT $1 OFFSET $2`, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	plans, err := scanPlans(rows)
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, plans)
}

// Count returns the total number of plans.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM training_plans`).Scan(&n)
	return n, err
}

// CountByMember returns the number of plans owned by a member.
func (r *Repository) CountByMember(ctx context.Context, memberID int64) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM training_plans WHERE member_id = $1`, memberID).Scan(&n)
	return n, err
}

// ListByMember returns all plans owned by a member.
func (r *Repository) ListByMember(ctx context.Context, memberID int64) ([]TrainingPlan, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, trainer_name, member_id FROM training_plans
		WHERE member_id = $1
		ORDER BY id`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	plans, err := scanPlans(rows)
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, plans)
}

// ListByMemberPage returns one page of a member's plans.
func (r *Repository) ListByMemberPage(ctx context.Context, memberID int64, page, perPage int) ([]TrainingPlan, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, trainer_name, member_id FROM training_plans
		WHERE member_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3`, memberID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	plans, err := scanPlans(rows)
	if err != nil {
		return nil, err
	}
	return r.attachItems(ctx, plans)
}

// FindByID returns one plan with items and exercises loaded.
func (r *Repository) FindByID(ctx context.Context, id int64) (*TrainingPlan, error) {
	var p TrainingPlan
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, trainer_name, member_id FROM training_plans
		WHERE id = $1`, id).Scan(&p.ID, &p.Title, &p.TrainerName, &p.MemberID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	plans, err := r.attachItems(ctx, []TrainingPlan{p})
	if err != nil {
		return nil, err
	}
	return &plans[0], nil
}

// InsertPlan persists a plan and its nested items and exercises in one
// transaction, so a half-written plan never survives a failure.
func (r *Repository) InsertPlan(ctx context.Context, input CreateTrainingPlanInput) (*TrainingPlan, error) {
	var planID int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO training_plans (title, trainer_name, member_id)
			VALUES ($1, $2, $3)
			RETURNING id`,
			input.Title, input.TrainerName, input.MemberID).Scan(&planID)
		if err != nil {
			return err
		}
		for _, item := range input.PlanItems {
			var itemID int64
			err = tx.QueryRow(ctx, `
				INSERT INTO plan_items (muscle_name, training_plan_id)
				VALUES ($1, $2)
				RETURNING id`, item.MuscleName, planID).Scan(&itemID)
			if err != nil {
				return err
			}
			for _, ex := range item.Exercises {
				_, err = tx.Exec(ctx, `
					INSERT INTO exercises (title, sets_number, repetitions_number,
						machine_number, weight, plan_item_id)
					VALUES ($1, $2, $3, $4, $5, $6)`,
					ex.Title, ex.SetsNumber, ex.RepetitionsNumber,
					ex.MachineNumber, ex.Weight, itemID)
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, planID)
}

// InsertPlanItem persists a plan item with its exercises.
func (r *Repository) InsertPlanItem(ctx context.Context, input CreatePlanItemInput) (*PlanItem, error) {
	if _, err := r.FindByID(ctx, input.TrainingPlanID); err != nil {
		return nil, err
	}
	var itemID int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO plan_items (muscle_name, training_plan_id)
			VALUES ($1, $2)
			RETURNING id`, input.MuscleName, input.TrainingPlanID).Scan(&itemID)
		if err != nil {
			return err
		}
		for _, ex := range input.Exercises {
			_, err = tx.Exec(ctx, `
				INSERT INTO exercises (title, sets_number, repetitions_number,
					machine_number, weight, plan_item_id)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				ex.Title, ex.SetsNumber, ex.RepetitionsNumber,
				ex.MachineNumber, ex.Weight, itemID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindPlanItem(ctx, itemID)
}

// InsertExercise persists a single exercise under a plan item.
func (r *Repository) InsertExercise(ctx context.Context, input CreateExerciseInput) (*Exercise, error) {
	if _, err := r.FindPlanItem(ctx, input.PlanItemID); err != nil {
		return nil, err
	}
	var ex Exercise
	err := r.pool.QueryRow(ctx, `
		INSERT INTO exercises (title, sets_number, repetitions_number,
			machine_number, weight, plan_item_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, title, sets_number, repetitions_number, machine_number,
			weight, plan_item_id`,
		input.Title, input.SetsNumber, input.RepetitionsNumber,
		input.MachineNumber, input.Weight, input.PlanItemID).Scan(
		&ex.ID, &ex.Title, &ex.SetsNumber, &ex.RepetitionsNumber,
		&ex.MachineNumber, &ex.Weight, &ex.PlanItemID)
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

// UpdatePlan rewrites the plan header.
func (r *Repository) UpdatePlan(ctx context.Context, id int64, input EditTrainingPlanInput) (*TrainingPlan, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE training_plans SET title = $2, trainer_name = $3
		WHERE id = $1`, id, input.Title, input.TrainerName)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, httpx.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// UpdatePlanItem renames a plan item.
func (r *Repository) UpdatePlanItem(ctx context.Context, id int64, input EditPlanItemInput) (*PlanItem, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE plan_items SET muscle_name = $2 WHERE id = $1`, id, input.MuscleName)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, httpx.ErrNotFound
	}
	return r.FindPlanItem(ctx, id)
}

// UpdateExercise rewrites an exercise.
func (r *Repository) UpdateExercise(ctx context.Context, id int64, input EditExerciseInput) (*Exercise, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE exercises SET title = $2, sets_number = $3,
			repetitions_number = $4, machine_number = $5, weight = $6
		WHERE id = $1`,
		id, input.Title, input.SetsNumber, input.RepetitionsNumber,
		input.MachineNumber, input.Weight)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, httpx.ErrNotFound
	}
	return r.FindExercise(ctx, id)
}

// DeletePlan removes a plan and cascades to its items and exercises.
func (r *Repository) DeletePlan(ctx context.Context, id int64) (*TrainingPlan, error) {
	plan, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	err = db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			DELETE FROM exercises WHERE plan_item_id IN
				(SELECT id FROM plan_items WHERE training_plan_id = $1)`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM plan_items WHERE training_plan_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM training_plans WHERE id = $1`, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// DeletePlanItem removes a plan item and cascades to its exercises.
func (r *Repository) DeletePlanItem(ctx context.Context, id int64) (*PlanItem, error) {
	item, err := r.FindPlanItem(ctx, id)
	if err != nil {
		return nil, err
	}
	err = db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM exercises WHERE plan_item_id = $1`, id); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `DELETE FROM plan_items WHERE id = $1`, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteExercise removes one exercise.
func (r *Repository) DeleteExercise(ctx context.Context, id int64) (*Exercise, error) {
	ex, err := r.FindExercise(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM exercises WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return ex, nil
}

// FindPlanItem returns a plan item with its exercises.
func (r *Repository) FindPlanItem(ctx context.Context, id int64) (*PlanItem, error) {
	var item PlanItem
	err := r.pool.QueryRow(ctx, `
		SELECT id, muscle_name, training_plan_id FROM plan_items
		WHERE id = $1`, id).Scan(&item.ID, &item.MuscleName, &item.TrainingPlanID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	item.Exercises = []Exercise{}
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, sets_number, repetitions_number, machine_number,
			weight, plan_item_id
		FROM exercises
		WHERE plan_item_id = $1
		ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ex Exercise
		if err := rows.Scan(&ex.ID, &ex.Title, &ex.SetsNumber,
			&ex.RepetitionsNumber, &ex.MachineNumber, &ex.Weight,
			&ex.PlanItemID); err != nil {
			return nil, err
		}
		item.Exercises = append(item.Exercises, ex)
	}
	return &item, rows.Err()
}

// FindExercise returns a single exercise.
func (r *Repository) FindExercise(ctx context.Context, id int64) (*Exercise, error) {
	var ex Exercise
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, sets_number, repetitions_number, machine_number,
			weight, plan_item_id
		FROM exercises
		WHERE id = $1`, id).Scan(&ex.ID, &ex.Title, &ex.SetsNumber,
		&ex.RepetitionsNumber, &ex.MachineNumber, &ex.Weight, &ex.PlanItemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &ex, nil
}

// attachItems loads items and exercises for the given plans in two
// queries regardless of page size.
func (r *Repository) attachItems(ctx context.Context, plans []TrainingPlan) ([]TrainingPlan, error) {
	if len(plans) == 0 {
		return plans, nil
	}
	planIDs := make([]int64, len(plans))
	planIdx := make(map[int64]int, len(plans))
	for i := range plans {
		plans[i].PlanItems = []PlanItem{}
		planIDs[i] = plans[i].ID
		planIdx[plans[i].ID] = i
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, muscle_name, training_plan_id FROM plan_items
		WHERE training_plan_id = ANY($1)
		ORDER BY id`, planIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	itemIdx := map[int64][2]int{}
	for rows.Next() {
		var item PlanItem
		if err := rows.Scan(&item.ID, &item.MuscleName, &item.TrainingPlanID); err != nil {
			return nil, err
		}
		item.Exercises = []Exercise{}
		pi := planIdx[item.TrainingPlanID]
		plans[pi].PlanItems = append(plans[pi].PlanItems, item)
		itemIdx[item.ID] = [2]int{pi, len(plans[pi].PlanItems) - 1}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	exRows, err := r.pool.Query(ctx, `
		SELECT e.id, e.title, e.sets_number, e.repetitions_number,
			e.machine_number, e.weight, e.plan_item_id
		FROM exercises e
		JOIN plan_items pi ON pi.id = e.plan_item_id
		WHERE pi.training_plan_id = ANY($1)
		ORDER BY e.id`, planIDs)
	if err != nil {
		return nil, err
	}
	defer exRows.Close()
	for exRows.Next() {
		var ex Exercise
		if err := exRows.Scan(&ex.ID, &ex.Title, &ex.SetsNumber,
			&ex.RepetitionsNumber, &ex.MachineNumber, &ex.Weight,
			&ex.PlanItemID); err != nil {
			return nil, err
		}
		loc, ok := itemIdx[ex.PlanItemID]
		if !ok {
			continue
		}
		items := plans[loc[0]].PlanItems
		items[loc[1]].Exercises = append(items[loc[1]].Exercises, ex)
	}
	return plans, exRows.Err()
}

func scanPlans(rows pgx.Rows) ([]TrainingPlan, error) {
	var out []TrainingPlan
	for rows.Next() {
		var p TrainingPlan
		if err := rows.Scan(&p.ID, &p.Title, &p.TrainerName, &p.MemberID); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
