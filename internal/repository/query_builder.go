package repository

import "github.com/doug-martin/goqu/v9"

type QueryBuilder interface {
	AddCondition(key string, value interface{})
	HasConditions() bool
	BuildConditions(aliases map[string]string) goqu.Ex
}
