// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zkarb/zkarbvm/rpc"
	"github.com/zkarb/zkarbvm/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve ledger queries over JSON-RPC",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		v, err := openVM(cmd)
		if err != nil {
			return err
		}
		defer v.Close()

		router, err := rpc.NewRouter(v, v.Gatherer())
		if err != nil {
			return err
		}
		listener, err := net.Listen("tcp", cfg.RPCAddress)
		if err != nil {
			return err
		}
		serverCfg := server.NewDefaultConfig()
		serverCfg.AllowedOrigins = cfg.AllowedOrigins
		s := server.New(v.Logger(), listener, serverCfg, router)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			v.Logger().Info("serving json-rpc",
				zap.String("address", listener.Addr().String()),
				zap.String("endpoint", rpc.JSONRPCEndpoint),
			)
			return s.Dispatch()
		})
		g.Go(func() error {
			<-ctx.Done()
			return s.Shutdown()
		})
		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
