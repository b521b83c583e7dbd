package neuron

// SaveSubscription upserts a ledger row by its record ID.
func (s *Store) SaveSubscription(sub SubscriptionRecord) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	confirmed := 0
	if sub.YoutubeSubscribed {
		confirmed = 1
	}
	_, err = db.Exec(`INSERT OR REPLACE INTO subscriptions (id, email, content_id, subscribed_at, youtube_subscribed) VALUES (?, ?, ?, ?, ?)`,
		sub.ID, sub.Email, sub.ContentID, sub.SubscribedAt, confirmed)
	return err
}

// ListSubscriptions returns the full ledger, most recent first.
func (s *Store) ListSubscriptions() ([]SubscriptionRecord, error) {
	db, err := s.conn()
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(`SELECT id, email, content_id, subscribed_at, youtube_subscribed FROM subscriptions ORDER BY subscribed_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []SubscriptionRecord
	for rows.Next() {
		var sub SubscriptionRecord
		var confirmed int
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.ContentID, &sub.SubscribedAt, &confirmed); err != nil {
			return nil, err
		}
		sub.YoutubeSubscribed = confirmed == 1
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// HasConfirmedAccess reports whether at least one ledger row matches
// (email, contentID) with the channel-subscription flag confirmed. This is
// the access predicate for premium content while channel gating is active.
func (s *Store) HasConfirmedAccess(email, contentID string) (bool, error) {
	db, err := s.conn()
	if err != nil {
		return false, err
	}
	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM subscriptions WHERE email = ? AND content_id = ? AND youtube_subscribed = 1`,
		email, contentID).Scan(&count)
	return count > 0, err
}

// HasSubscription reports whether any ledger row exists for (email, contentID),
// confirmed or not. With channel gating disabled, any record grants access.
func (s *Store) HasSubscription(email, contentID string) (bool, error) {
	db, err := s.conn()
	if err != nil {
		return false, err
	}
	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM subscriptions WHERE email = ? AND content_id = ?`,
		email, contentID).Scan(&count)
	return count > 0, err
}
