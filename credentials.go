package neuron

import (
	"database/sql"

	"golang.org/x/crypto/bcrypt"
)

// CheckAdminCredentials reports whether the email/password pair matches a
// stored admin credential. Passwords are stored as bcrypt hashes; the check
// contract is a plain boolean.
func (s *Store) CheckAdminCredentials(email, password string) (bool, error) {
	db, err := s.conn()
	if err != nil {
		return false, err
	}
	rows, err := db.Query(`SELECT password_hash FROM admin_credentials WHERE email = ?`, email)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return false, err
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil {
			return true, nil
		}
	}
	return false, rows.Err()
}

// SetAdminCredential replaces the credential set with a single (email,
// password) pair. Used by the dashboard to rotate the seeded default login.
func (s *Store) SetAdminCredential(email, password string) error {
	db, err := s.conn()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM admin_credentials`); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`INSERT INTO admin_credentials (email, password_hash) VALUES (?, ?)`, email, string(hash)); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// AdminEmail returns the email of the first stored credential, for display
// in the dashboard settings form.
func (s *Store) AdminEmail() (string, error) {
	db, err := s.conn()
	if err != nil {
		return "", err
	}
	var email string
	err = db.QueryRow(`SELECT email FROM admin_credentials ORDER BY id LIMIT 1`).Scan(&email)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return email, err
}
