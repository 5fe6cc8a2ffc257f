/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/allbin/mameduino"
	"github.com/allbin/mameduino/internal/serial"
	"github.com/allbin/mameduino/internal/ui"
)

// newListCmd builds the list command
func newListCmd(env environment, v *viper.Viper, configFile *string) *cobra.Command {
	var probe bool

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available serial ports",
		Long: `List the serial ports present on the system.

This command scans /dev for:
- USB CDC/ACM devices (ttyACM*), how a Leonardo usually shows up
- USB serial adapters (ttyUSB*)
- Standard serial ports (ttyS*)
- ARM/Raspberry Pi ports (ttyAMA*)

With --probe every port is asked to identify itself the same way -a does,
which shows which one is the MAMEduino.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := env.listPorts()
			if err != nil {
				return fmt.Errorf("listing ports: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(ports) == 0 {
				ui.Println(out, ui.StatusWarning, "No serial ports found")
				return nil
			}

			rows := make([]ui.PortRow, 0, len(ports))
			for _, path := range ports {
				rows = append(rows, ui.PortRow{
					Path:        path,
					Type:        getPortType(path),
					Description: serial.Describe(path),
				})
			}

			if probe {
				cfg, logger, err := setup(v, *configFile)
				if err != nil {
					return err
				}
				defer logger.Sync()

				detector := &mameduino.Detector{
					Open: env.open,
					ClientOptions: []mameduino.Option{
						mameduino.WithTimeout(cfg.Timeout),
						mameduino.WithPollInterval(cfg.Poll),
					},
					Logger: logger,
				}
				for i := range rows {
					if err := cmd.Context().Err(); err != nil {
						return err
					}
					client, err := detector.Probe(cmd.Context(), rows[i].Path)
					if err != nil {
						logger.Debug("probe", zap.String("port", rows[i].Path), zap.Error(err))
						continue
					}
					rows[i].Identity = client.Identity()
					client.Close()
				}
			}

			fmt.Fprintf(out, "Found %d serial port(s):\n\n", len(rows))
			fmt.Fprintln(out, ui.RenderPortTable(rows, probe))
			return nil
		},
	}

	listCmd.Flags().BoolVarP(&probe, "probe", "p", false, "ask every port to identify itself")

	return listCmd
}

// getPortType returns a short type classification for the port
func getPortType(path string) string {
	name := strings.ToLower(strings.TrimPrefix(path, serial.DevicePrefix))
	switch {
	case strings.HasPrefix(name, "ttyusb"):
		return "USB Serial"
	case strings.HasPrefix(name, "ttyacm"):
		return "USB CDC/ACM"
	case strings.HasPrefix(name, "ttyama"):
		return "ARM Serial"
	case strings.HasPrefix(name, "ttys"):
		return "Standard Serial"
	default:
		return "Serial Port"
	}
}
