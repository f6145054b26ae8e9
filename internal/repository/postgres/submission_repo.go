package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"webformguard/internal/domain"
)

// Submissions are stored one row per field value in webform_submission_data
// (webform_id, sid, name, property, delta, value).
type submissionRepository struct {
	DB *sql.DB
}

// NewSubmissionRepository returns a domain.SubmissionRepository implemented with Postgres.
func NewSubmissionRepository(db *sql.DB) domain.SubmissionRepository {
	return &submissionRepository{DB: db}
}

func (r *submissionRepository) ListIDsSharingFriendEmails(ctx context.Context, formID, email string, friendEmails [3]string) ([]string, error) {
	query := `
		SELECT wsd.sid
		FROM webform_submission_data wsd
		WHERE wsd.webform_id = $1
		  AND wsd.name = 'email'
		  AND wsd.value = $2
		  AND EXISTS (
			SELECT 1
			FROM webform_submission_data t
			WHERE t.webform_id = $1
			  AND t.sid = wsd.sid
			  AND t.name IN ('email_amigo_1', 'email_amigo_2', 'email_amigo_3')
			  AND t.value IN ($3, $4, $5)
		  )
		ORDER BY wsd.sid
	`
	rows, err := r.DB.QueryContext(ctx, query, formID, email, friendEmails[0], friendEmails[1], friendEmails[2])
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *submissionRepository) GetMultiple(ctx context.Context, ids []string) ([]*domain.Submission, error) {
	if len(ids) == 0 {
		return []*domain.Submission{}, nil
	}
	query := `
		SELECT sid, webform_id, name, value
		FROM webform_submission_data
		WHERE sid = ANY($1::int[])
		  AND property = ''
		ORDER BY sid, name, delta
	`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*domain.Submission
	byID := make(map[string]*domain.Submission)
	for rows.Next() {
		var sid, formID, name string
		var value sql.NullString
		if err := rows.Scan(&sid, &formID, &name, &value); err != nil {
			return nil, err
		}
		sub, ok := byID[sid]
		if !ok {
			sub = domain.NewSubmission(sid, formID, nil)
			byID[sid] = sub
			subs = append(subs, sub)
		}
		// Multi-value elements keep their first value (delta 0).
		if _, seen := sub.Data[name]; !seen {
			sub.Data[name] = value.String
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []*domain.Submission{}
	}
	return subs, nil
}

func (r *submissionRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}
