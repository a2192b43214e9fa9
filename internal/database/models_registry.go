package database

import "ripple/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.PostHashtag{},
		&models.PostMention{},
		&models.PostLike{},
		&models.Comment{},
		&models.CommentLike{},
		&models.Notification{},
	}
}
