/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"os"

	"dirpx.dev/errview/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootOptions is shared by every subcommand.
type rootOptions struct {
	cfgFile string
	v       *viper.Viper
}

// load reads the configuration, letting bound flags override file and
// environment values.
func (o *rootOptions) load() (*config.Config, error) {
	return config.Load(o.v, config.LoadOptions{
		ConfigFile:    o.cfgFile,
		AllowNoConfig: o.cfgFile == "",
	})
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "errview",
		Short: "Exception classification and error views",
		Long: `errview classifies unhandled errors into kinds, resolves each kind to a
logging code and a response, and renders a safe error view.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&o.cfgFile, "config", "", "config file (default is ./configs/config_<APP_ENV>.yaml)")
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	_ = o.v.BindPFlag("log.level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(newServeCmd(o), newTableCmd(o))
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
