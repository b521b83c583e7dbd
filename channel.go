package neuron

import "database/sql"

// GetChannelConfig reads the singleton channel configuration. Absence is a
// valid state (channel gating inactive) and is reported as ErrNotFound.
func (s *Store) GetChannelConfig() (ChannelConfig, error) {
	db, err := s.conn()
	if err != nil {
		return ChannelConfig{}, err
	}
	var cfg ChannelConfig
	var enabled int
	err = db.QueryRow(`SELECT channel_url, channel_name, enabled FROM youtube_config WHERE id = 1`).
		Scan(&cfg.ChannelURL, &cfg.ChannelName, &enabled)
	if err != nil {
		return ChannelConfig{}, err
	}
	cfg.Enabled = enabled == 1
	return cfg, nil
}

// SaveChannelConfig upserts the singleton channel configuration row.
func (s *Store) SaveChannelConfig(cfg ChannelConfig) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	enabled := 0
	if cfg.Enabled {
		enabled = 1
	}
	_, err = db.Exec(`INSERT OR REPLACE INTO youtube_config (id, channel_url, channel_name, enabled) VALUES (1, ?, ?, ?)`,
		cfg.ChannelURL, cfg.ChannelName, enabled)
	return err
}

// channelConfigOrNone maps the absent-config state to a zero value so gate
// callers don't branch on ErrNotFound themselves.
func (s *Store) channelConfigOrNone() (ChannelConfig, error) {
	cfg, err := s.GetChannelConfig()
	if err == sql.ErrNoRows {
		return ChannelConfig{}, nil
	}
	return cfg, err
}
