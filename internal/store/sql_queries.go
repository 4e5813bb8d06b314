package store

const (
	getCase = `SELECT domain, case_id, type, name, owner_id, opened_by, modified_by,
			properties, closed, deleted, server_modified_on, sequence, actions, indices
		FROM cases
		WHERE domain = $1 AND case_id = $2;`

	getCasesIndexing = `SELECT c.domain, c.case_id, c.type, c.name, c.owner_id, c.opened_by, c.modified_by,
			c.properties, c.closed, c.deleted, c.server_modified_on, c.sequence, c.actions, c.indices
		FROM cases c
		JOIN case_indices i ON i.domain = c.domain AND i.case_id = c.case_id
		WHERE c.domain = $1 AND i.referenced_id = $2 AND NOT c.deleted;`

	upsertCase = `INSERT INTO cases (
			domain, case_id, type, name, owner_id, opened_by, modified_by,
			properties, closed, deleted, server_modified_on, sequence, actions, indices
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (domain, case_id) DO UPDATE SET
			type = EXCLUDED.type,
			name = EXCLUDED.name,
			owner_id = EXCLUDED.owner_id,
			modified_by = EXCLUDED.modified_by,
			properties = EXCLUDED.properties,
			closed = EXCLUDED.closed,
			deleted = EXCLUDED.deleted,
			server_modified_on = EXCLUDED.server_modified_on,
			sequence = EXCLUDED.sequence,
			actions = EXCLUDED.actions,
			indices = EXCLUDED.indices;`

	deleteCaseIndices = `DELETE FROM case_indices WHERE domain = $1 AND case_id = $2;`

	insertCaseIndex = `INSERT INTO case_indices (
			domain, case_id, identifier, referenced_type, referenced_id, relationship
		) VALUES ($1, $2, $3, $4, $5, $6);`

	advanceChangeStream = `INSERT INTO change_stream (domain) VALUES ($1) RETURNING seq;`

	getCheckpoint = `SELECT COALESCE(MAX(seq), 0) FROM change_stream WHERE domain = $1;`

	createSyncLog = `INSERT INTO sync_logs (
			id, user_id, domain, sequence, date, previous_log_id,
			owned_cases, dependent_cases, state_hash
		) VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9);`

	getSyncLog = `SELECT id, user_id, domain, sequence, date, COALESCE(previous_log_id, ''),
			owned_cases, dependent_cases, state_hash
		FROM sync_logs
		WHERE id = $1;`

	lastSyncLogForUser = `SELECT id, user_id, domain, sequence, date, COALESCE(previous_log_id, ''),
			owned_cases, dependent_cases, state_hash
		FROM sync_logs
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
		LIMIT 1;`

	updateSyncLog = `UPDATE sync_logs
		SET owned_cases = $2, dependent_cases = $3, state_hash = $4
		WHERE id = $1;`

	getCleanlinessFlag = `SELECT domain, owner_id, is_clean, COALESCE(hint_case_id, ''), last_computed
		FROM cleanliness_flags
		WHERE domain = $1 AND owner_id = $2;`

	upsertCleanlinessFlag = `INSERT INTO cleanliness_flags (domain, owner_id, is_clean, hint_case_id, last_computed)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		ON CONFLICT (domain, owner_id) DO UPDATE SET
			is_clean = EXCLUDED.is_clean,
			hint_case_id = EXCLUDED.hint_case_id,
			last_computed = EXCLUDED.last_computed;`

	markFlagDirty = `INSERT INTO cleanliness_flags (domain, owner_id, is_clean, hint_case_id, last_computed)
		VALUES ($1, $2, FALSE, NULLIF($3, ''), $4)
		ON CONFLICT (domain, owner_id) DO UPDATE SET
			is_clean = FALSE,
			hint_case_id = EXCLUDED.hint_case_id,
			last_computed = EXCLUDED.last_computed;`
)
