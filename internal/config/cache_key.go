package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// QuizPayloadKey returns the cache key for a quiz's student-facing payload.
func (r *CacheKeyStruct) QuizPayloadKey(quizID string) string {
	return fmt.Sprintf("quiz:%s:payload", quizID)
}

// PublicTreeKey returns the cache key for the public knowledge tree.
func (r *CacheKeyStruct) PublicTreeKey() string {
	return "nodes:public_tree"
}

var CacheKey = NewCacheKeyStruct()
