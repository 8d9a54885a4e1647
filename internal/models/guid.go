package models

import "github.com/google/uuid"

func ensureGUID(guid *string) {
	if *guid == "" {
		*guid = uuid.NewString()
	}
}
