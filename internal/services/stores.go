package services

import (
	"alarmbot/internal/alarm/interfaces"
	"alarmbot/internal/models"
	"alarmbot/internal/structures"
)

func NewAlarmStore(conf *structures.Config, persister interfaces.PersisterInterface) *models.AlarmStore {
	return models.NewAlarmStore(conf.Alarm.MaxPerOwner, persister)
}

func NewSessionStore(conf *structures.Config) *models.SessionStore {
	return models.NewSessionStore(conf.Session.TTL)
}
