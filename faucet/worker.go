package faucet

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/faucetbot/faucet-workers/utils"
)

// Worker is a background task the server executes on a fixed frequency.
type Worker interface {
	Execute()
	GetName() string
	GetFrequency() int
	GetQuitChan() chan bool
}

// WorkerAbs carries the bookkeeping every worker shares.
type WorkerAbs struct {
	ID        int
	Name      string
	Frequency int // in sec
	Quit      chan bool
	Logger    *logrus.Entry
}

func (a *WorkerAbs) Init(id int, name string, freq int) {
	a.ID = id
	a.Name = name
	a.Frequency = freq
	a.Quit = make(chan bool)
	a.Logger = logrus.WithField("worker", name)
}

func (a *WorkerAbs) GetName() string {
	return a.Name
}

func (a *WorkerAbs) GetFrequency() int {
	return a.Frequency
}

func (a *WorkerAbs) GetQuitChan() chan bool {
	return a.Quit
}

// ExportErrorLog logs the message and pushes it to the alert webhook.
func (a *WorkerAbs) ExportErrorLog(msg string) {
	a.Logger.Error(msg)
	utils.SendSlackNotification(fmt.Sprintf("[%s] %s", a.Name, msg), utils.AlertNotification)
}

// ExportInfoLog logs the message and pushes it to the info webhook.
func (a *WorkerAbs) ExportInfoLog(msg string) {
	a.Logger.Info(msg)
	utils.SendSlackNotification(fmt.Sprintf("[%s] %s", a.Name, msg), utils.InfoNotification)
}
