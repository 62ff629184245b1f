package models

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// All lists every model in migration order.
func All() []any {
	return []any{&User{}, &CardTemplate{}, &Deck{}, &Card{}, &GitHubExport{}}
}

func assignID(id *string) error {
	if *id != "" {
		return nil
	}
	publicID, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}
	*id = publicID
	return nil
}
