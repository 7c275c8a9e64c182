package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/faucetbot/faucet-workers/chat"
	"github.com/faucetbot/faucet-workers/faucet"
)

type Server struct {
	quit    chan os.Signal
	finish  chan bool
	adapter *chat.Adapter
	workers []faucet.Worker
}

func NewServer(adapter *chat.Adapter, listWorkers []faucet.Worker) *Server {
	quitChan := make(chan os.Signal, 1)
	signal.Notify(quitChan, syscall.SIGINT, syscall.SIGTERM)
	return &Server{
		quit:    quitChan,
		finish:  make(chan bool, len(listWorkers)),
		adapter: adapter,
		workers: listWorkers,
	}
}

func (s *Server) NotifyQuitSignal(workers []faucet.Worker) {
	sig := <-s.quit
	fmt.Printf("Caught sig: %+v \n", sig)
	// notify all workers about quit signal
	for _, a := range workers {
		a.GetQuitChan() <- true
	}
}

func (s *Server) Run() error {
	if err := s.adapter.Start(); err != nil {
		return err
	}
	go s.NotifyQuitSignal(s.workers)
	for _, a := range s.workers {
		go executeWorker(s.finish, a)
	}
	return nil
}

func (s *Server) Stop() {
	if err := s.adapter.Stop(); err != nil {
		fmt.Printf("Error closing chat session: %v\n", err)
	}
}

func executeWorker(finish chan bool, worker faucet.Worker) {
	worker.Execute() // execute as soon as starting up
	for {
		select {
		case <-worker.GetQuitChan():
			fmt.Printf("Finishing task for %s ...\n", worker.GetName())
			time.Sleep(time.Second * 1)
			fmt.Printf("Task for %s done! \n", worker.GetName())
			finish <- true
			return
		case <-time.After(time.Duration(worker.GetFrequency()) * time.Second):
			worker.Execute()
		}
	}
}
