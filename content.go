package neuron

import "database/sql"

// SaveContent upserts a content item by ID, then upserts each attachment in
// its list. Attachment writes are independent statements, matching the
// item-then-attachments save order of the admin form.
func (s *Store) SaveContent(item ContentItem) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	isPublic := 0
	if item.IsPublic {
		isPublic = 1
	}
	var channelURL sql.NullString
	if item.YoutubeChannelURL != "" {
		channelURL = sql.NullString{String: item.YoutubeChannelURL, Valid: true}
	}
	if _, err := db.Exec(`INSERT OR REPLACE INTO content (id, title, description, body, created_at, is_public, youtube_channel_url) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Title, item.Description, item.Body, item.CreatedAt, isPublic, channelURL); err != nil {
		return err
	}
	for _, att := range item.Attachments {
		if err := s.SaveAttachment(item.ID, att); err != nil {
			return err
		}
	}
	return nil
}

// SaveAttachment upserts a single attachment row for the given content item.
func (s *Store) SaveAttachment(contentID string, att Attachment) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT OR REPLACE INTO file_attachments (id, content_id, name, type, size, url, uploaded_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		att.ID, contentID, att.Name, att.Type, att.Size, att.URL, att.UploadedAt)
	return err
}

// DeleteAttachment removes one attachment row by ID.
func (s *Store) DeleteAttachment(id string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	_, err = db.Exec(`DELETE FROM file_attachments WHERE id = ?`, id)
	return err
}

const contentJoin = `
SELECT c.id, c.title, c.description, c.body, c.created_at, c.is_public, c.youtube_channel_url,
       f.id, f.name, f.type, f.size, f.url, f.uploaded_at
FROM content c
LEFT JOIN file_attachments f ON f.content_id = c.id`

// ListContent returns every content item with its attachments, ordered by
// creation timestamp descending. Attachments keep insertion order. An item
// with no attachments gets an empty, non-nil list.
func (s *Store) ListContent() ([]ContentItem, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(contentJoin + `
ORDER BY c.created_at DESC, c.id, f.rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items, err := scanContentRows(rows)
	if err != nil {
		return nil, err
	}
	return items, rows.Err()
}

// GetContent returns one content item with its attachments. A missing ID is
// reported as ErrNotFound; callers treat that as absence, not failure.
func (s *Store) GetContent(id string) (ContentItem, error) {
	db, err := s.conn()
	if err != nil {
		return ContentItem{}, err
	}
	rows, err := db.Query(contentJoin+`
WHERE c.id = ?
ORDER BY f.rowid`, id)
	if err != nil {
		return ContentItem{}, err
	}
	defer rows.Close()
	items, err := scanContentRows(rows)
	if err != nil {
		return ContentItem{}, err
	}
	if err := rows.Err(); err != nil {
		return ContentItem{}, err
	}
	if len(items) == 0 {
		return ContentItem{}, ErrNotFound
	}
	return items[0], nil
}

// DeleteContent removes a content item. Attachments and subscription rows
// referencing it go with it via FK cascade.
func (s *Store) DeleteContent(id string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	_, err = db.Exec(`DELETE FROM content WHERE id = ?`, id)
	return err
}

// scanContentRows materializes the left-joined result set into items with
// per-item attachment lists. Rows arrive grouped by content ID.
func scanContentRows(rows *sql.Rows) ([]ContentItem, error) {
	var items []ContentItem
	for rows.Next() {
		var (
			id, title, description, body, createdAt string
			isPublic                                int
			channelURL                              sql.NullString
			attID, attName, attType, attURL, attAt  sql.NullString
			attSize                                 sql.NullInt64
		)
		if err := rows.Scan(&id, &title, &description, &body, &createdAt, &isPublic, &channelURL,
			&attID, &attName, &attType, &attSize, &attURL, &attAt); err != nil {
			return nil, err
		}
		if len(items) == 0 || items[len(items)-1].ID != id {
			items = append(items, ContentItem{
				ID:                id,
				Title:             title,
				Description:       description,
				Body:              body,
				CreatedAt:         createdAt,
				IsPublic:          isPublic == 1,
				YoutubeChannelURL: channelURL.String,
				Attachments:       []Attachment{},
			})
		}
		if attID.Valid {
			item := &items[len(items)-1]
			item.Attachments = append(item.Attachments, Attachment{
				ID:         attID.String,
				ContentID:  id,
				Name:       attName.String,
				Type:       attType.String,
				Size:       attSize.Int64,
				URL:        attURL.String,
				UploadedAt: attAt.String,
			})
		}
	}
	return items, nil
}
