package middleware

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type MiddlewareConfig struct {
	Log    *logrus.Logger
	Config *viper.Viper
}

type Middleware struct {
	Log    *logrus.Logger
	Config *viper.Viper
	// LearnerHeader carries the learner id set by the gateway.
	LearnerHeader string
}

func NewMiddleware(c *MiddlewareConfig) *Middleware {
	if c == nil {
		return &Middleware{LearnerHeader: LearnerIDHeader}
	}

	m := &Middleware{
		Log:           c.Log,
		Config:        c.Config,
		LearnerHeader: LearnerIDHeader,
	}
	if c.Config != nil {
		if v := c.Config.GetString("api.learner_header"); v != "" {
			m.LearnerHeader = v
		}
	}
	return m
}
