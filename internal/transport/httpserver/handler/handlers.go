package handler

import (
	activitydomain "family-scheduler-go/internal/domain/activity"
	familydomain "family-scheduler-go/internal/domain/family"
	userdomain "family-scheduler-go/internal/domain/user"
	"family-scheduler-go/pkg/logger"
)

type Handlers struct {
	Families   *familydomain.Service
	Activities *activitydomain.Service
	Users      *userdomain.Service
	log        logger.Logger
}

func New(families *familydomain.Service, activities *activitydomain.Service, users *userdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Families:   families,
		Activities: activities,
		Users:      users,
		log:        log,
	}
}
