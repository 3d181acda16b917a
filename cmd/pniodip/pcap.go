package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	uferrors "github.com/tturner/pniodip/internal/errors"
	"github.com/tturner/pniodip/internal/layout"
	"github.com/tturner/pniodip/internal/logging"
	"github.com/tturner/pniodip/internal/pcap"
	"github.com/tturner/pniodip/internal/profisafe"
	"github.com/tturner/pniodip/internal/rtc"
)

type pcapFlags struct {
	layoutPath string
	hexdump    bool
	verbose    bool
	logFile    string
}

func newPcapCmd() *cobra.Command {
	flags := &pcapFlags{}

	cmd := &cobra.Command{
		Use:   "pcap <capture-file>",
		Short: "Dump PROFINET frames from a capture file",
		Long: `Read a pcap/pcapng capture and dump every PROFINET frame in it.

Frames on EtherType 0x8892 (directly or behind an 802.1Q tag) and on
UDP port 0x8892 are extracted. Cyclic real-time frames are decoded as
RTC PDUs; without a layout file the whole data area is shown as one
raw block.

A layout file tells the decoder the sub-frame structure of each flow
(source MAC, destination MAC, frame ID):

  flows:
    - src: "00:0c:29:aa:bb:cc"
      dst: "00:0c:29:dd:ee:ff"
      frame_id: "0x8000"
      subframes:
        - type: raw
          length: 16
        - type: ioxs
        - type: profisafe
          direction: control
          seed: true
          data_length: 12`,
		Example: `  pniodip pcap plant-floor.pcap
  pniodip pcap plant-floor.pcap --layout layout.yaml --hexdump`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPcap(args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.layoutPath, "layout", "", "YAML layout file for per-flow sub-frame structure")
	cmd.Flags().BoolVar(&flags.hexdump, "hexdump", false, "hex dump each frame's payload")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "verbose logging")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "also write logs to this file")

	return cmd
}

func runPcap(path string, flags *pcapFlags) error {
	level := logging.LogLevelInfo
	if flags.verbose {
		level = logging.LogLevelVerbose
	}
	logger, err := logging.NewLogger(level, flags.logFile)
	if err != nil {
		return err
	}
	defer logger.Close()

	reg := layout.NewRegistry()
	if flags.layoutPath != "" {
		reg, err = layout.LoadFile(flags.layoutPath)
		if err != nil {
			return uferrors.WrapLayoutError(err, flags.layoutPath)
		}
		logger.Verbose("loaded %d flow layouts from %s", reg.Len(), flags.layoutPath)
	}

	packets, err := pcap.Extract(path, reg)
	if err != nil {
		return uferrors.WrapCaptureError(err, path)
	}

	decoded, failed := 0, 0
	for i, p := range packets {
		printPacket(i, p, flags.hexdump)
		logger.LogFrame(p.Class.String(), p.Flow.Src.String(), p.Flow.Dst.String(), len(p.Payload), p.DecodeErr)
		if p.Frame != nil {
			decoded++
		}
		if p.DecodeErr != nil {
			failed++
		}
	}

	fmt.Fprintf(os.Stdout, "\n%d PROFINET frames, %d RTC PDUs decoded, %d decode failures\n",
		len(packets), decoded, failed)
	return nil
}

func printPacket(i int, p pcap.Packet, hexdump bool) {
	fmt.Fprintf(os.Stdout, "#%d %s  %s -> %s  %s  %d bytes\n",
		i, p.Timestamp.Format("15:04:05.000000"), p.Flow.Src, p.Flow.Dst, p.Class, len(p.Payload))

	switch {
	case p.DecodeErr != nil:
		fmt.Fprintf(os.Stdout, "    decode error: %v\n", p.DecodeErr)
	case p.Frame != nil:
		printFrame(p.Frame)
		if len(p.Rest) > 0 {
			fmt.Fprintf(os.Stdout, "    %d trailing bytes beyond the PDU ceiling\n", len(p.Rest))
		}
	}

	if hexdump {
		fmt.Fprint(os.Stdout, pcap.HexDump(p.Payload, 16))
	}
}

func printFrame(f *rtc.Frame) {
	for _, sf := range f.SubFrames {
		switch v := sf.(type) {
		case rtc.RawData:
			fmt.Fprintf(os.Stdout, "    raw data (%d bytes)\n", len(v.Data))
		case rtc.IOxSChain:
			fmt.Fprintf(os.Stdout, "    IOxS chain (%d entries):", len(v))
			for _, x := range v {
				fmt.Fprintf(os.Stdout, " %s/%s", x.DataState, x.Instance)
			}
			fmt.Fprintln(os.Stdout)
		case rtc.SafetySubFrame:
			fmt.Fprintf(os.Stdout, "    PROFIsafe %s (%s, %d data bytes) flags=%v crc=0x%X\n",
				v.Direction, v.Mode, len(v.Data), profisafe.FlagNames(v.Direction, v.Flags), v.CRC)
		}
	}
	fmt.Fprintf(os.Stdout, "    padding=%d cycle=%d dataStatus=%v transferStatus=0x%02X\n",
		f.Padding, f.CycleCounter, f.DataStatus.Names(), f.TransferStatus)
}
