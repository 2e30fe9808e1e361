package main

import (
	"testing"

	hww "github.com/jmbenlloch/hww_dqm/pkg"
	"github.com/stretchr/testify/assert"
)

func TestStoreCutflowReportsConnectionFailure(t *testing.T) {
	config := hww.DefaultConfiguration()
	config.Host = "127.0.0.1"
	config.User = "hww_no_such_user"
	config.Passwd = "wrong"
	config.DBName = "hww_no_such_db"

	err := storeCutflow(config, "job", hww.NewMonitor())
	assert.ErrorContains(t, err, "error connecting to database")
}
