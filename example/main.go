// FILE: lixenwraith/emaconfig/example/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/lixenwraith/emaconfig"
)

const configFilePath = "EmaConfig.xml"

const initialConfig = `<?xml version="1.0" encoding="UTF-8"?>
<EmaConfig>
	<ConsumerGroup>
		<DefaultConsumer value="Consumer_1"/>
		<ConsumerList>
			<Consumer>
				<Name value="Consumer_1"/>
				<Channel value="Channel_1"/>
				<Logger value="Logger_1"/>
			</Consumer>
		</ConsumerList>
	</ConsumerGroup>
	<ChannelGroup>
		<ChannelList>
			<Channel>
				<Name value="Channel_1"/>
				<ChannelType value="ChannelType::RSSL_HTTP"/>
				<Host value="ads1"/>
				<Port value="8080"/>
				<ChannelTyp value="typo"/>
			</Channel>
		</ChannelList>
	</ChannelGroup>
	<LoggerGroup>
		<LoggerList>
			<Logger>
				<Name value="Logger_1"/>
				<LoggerType value="LoggerType::Stdout"/>
				<LoggerSeverity value="LoggerSeverity::Verbose"/>
			</Logger>
		</LoggerList>
	</LoggerGroup>
</EmaConfig>
`

func main() {
	// =========================================================================
	// PART 1: INITIAL SETUP
	// Create an EmaConfig.xml file on disk for our program to read.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 1: Creating configuration file...")

	defer func() {
		log.Println("---")
		log.Println("🧹 Cleaning up...")
		os.Remove(configFilePath)
	}()

	if err := os.WriteFile(configFilePath, []byte(initialConfig), 0644); err != nil {
		log.Fatalf("❌ Failed during file creation: %v", err)
	}
	log.Printf("✅ Configuration saved to %s.", configFilePath)

	// =========================================================================
	// PART 2: FILE CONFIGURATION ONLY
	// Reading never fails; problems are collected as diagnostics.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 2: Resolving from the file...")

	active, cfg, err := emaconfig.Quick(configFilePath)
	if err != nil {
		log.Fatalf("❌ Resolution failed: %v", err)
	}
	printCurrentState(active, "File Only")
	cfg.PrintErrors(os.Stdout, emaconfig.SeverityWarning)

	// =========================================================================
	// PART 3: PROGRAMMATIC DOCUMENT, HOST OVERRIDE AND VALIDATION
	// Documents apply over the file; Host forces a socket channel.
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 3: Configuring with the Builder...")

	doc := emaconfig.NewMap().Add("ChannelGroup",
		emaconfig.Nested("ChannelList", emaconfig.NewMap().Add("Channel_1",
			emaconfig.UInt("GuaranteedOutputBuffers", 5000),
			emaconfig.Int("ReconnectAttemptLimit", 10),
		)),
	)

	validator := func(a *emaconfig.ActiveConfig) error {
		if a.Channel.ReconnectAttemptLimit == 0 {
			return fmt.Errorf("channel %s never reconnects", a.Channel.Name)
		}
		return nil
	}

	active, cfg, err = emaconfig.NewBuilder().
		WithFile(configFilePath).
		WithOverlay(doc).
		WithHost("ads2:14005").
		WithOperationModel(emaconfig.UserDispatch).
		WithValidator(validator).
		Resolve()
	if err != nil {
		log.Fatalf("❌ Builder failed: %v", err)
	}
	log.Println("✅ Builder finished successfully.")
	printCurrentState(active, "File + Document + Host")

	cfg.LogErrors(emaconfig.NewSlogLogger(nil), emaconfig.SeverityVerbose)

	// =========================================================================
	// PART 4: SELECTING AN UNKNOWN CONSUMER
	// =========================================================================
	log.Println("---")
	log.Println("➡️  PART 4: Selecting a consumer the file does not define...")

	if err := cfg.ConsumerName("Consumer_9"); err != nil {
		log.Printf("✅ Rejected as expected: %v", err)
	}
	log.Printf("   Selected consumer is still %q", cfg.SelectedConsumer())
}

// printCurrentState is a helper to display the resolved state.
func printCurrentState(a *emaconfig.ActiveConfig, title string) {
	host, service, _ := a.Channel.Endpoint()
	fmt.Println("   --------------------------------------------------")
	fmt.Printf("             %s\n", title)
	fmt.Println("   --------------------------------------------------")
	fmt.Printf("     Consumer:         %s\n", a.ConsumerName)
	fmt.Printf("     Operation Model:  %s\n", a.OperationModel)
	fmt.Printf("     Channel:          %s (%s)\n", a.Channel.Name, a.Channel.Type())
	fmt.Printf("     Endpoint:         %s:%s\n", host, service)
	fmt.Printf("     Output Buffers:   %d\n", a.Channel.GuaranteedOutputBuffers)
	fmt.Printf("     Logger:           %s %s/%s\n", a.Logger.Name, a.Logger.Type, a.Logger.Severity)
	fmt.Println("   --------------------------------------------------")
}
