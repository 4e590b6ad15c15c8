package testing

import (
	"os"
	"path/filepath"
	"testing"
)

// Part numbers available in the fixture database written by WriteCubeDB.
const (
	PartF407       = "STM32F407VETx"
	PartL476       = "STM32L476RGTx"
	PartH743       = "STM32H743ZITx" // unknown family, no GPIO block
	PartAmbiguous  = "STM32G071RBTx" // listed twice in the index
	PartMissingMcu = "STM32F103C8Tx" // indexed, description file missing
)

const familiesXML = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<Families xmlns="http://mcd.rou.st.com/modules.php?name=mcu">
  <Family Name="STM32F4">
    <SubFamily Name="STM32F407/417">
      <Mcu Name="STM32F407V(E-G)Tx" PackageName="LQFP100" RefName="STM32F407VETx" RPN="STM32F407VE"/>
      <Mcu Name="STM32F407V(E-G)Tx" PackageName="LQFP100" RefName="STM32F407VGTx" RPN="STM32F407VG"/>
    </SubFamily>
  </Family>
  <Family Name="STM32L4">
    <SubFamily Name="STM32L4x6">
      <Mcu Name="STM32L476R(C-E-G)Tx" PackageName="LQFP64" RefName="STM32L476RGTx" RPN="STM32L476RG"/>
    </SubFamily>
  </Family>
  <Family Name="STM32H7">
    <SubFamily Name="STM32H743/753">
      <Mcu Name="STM32H743ZITx" PackageName="LQFP144" RefName="STM32H743ZITx" RPN="STM32H743ZI"/>
    </SubFamily>
  </Family>
  <Family Name="STM32G0">
    <SubFamily Name="STM32G0x1">
      <Mcu Name="STM32G071R(6-8-B)Tx" PackageName="LQFP64" RefName="STM32G071RBTx" RPN="STM32G071RB"/>
      <Mcu Name="STM32G071RBTxN" PackageName="LQFP64" RefName="STM32G071RBTx" RPN="STM32G071RB"/>
    </SubFamily>
  </Family>
  <Family Name="STM32F1">
    <SubFamily Name="STM32F103">
      <Mcu Name="STM32F103C(8-B)Tx" PackageName="LQFP48" RefName="STM32F103C8Tx" RPN="STM32F103C8"/>
    </SubFamily>
  </Family>
</Families>
`

const f407XML = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<Mcu ClockTree="STM32F4" DBVersion="V3.0" Family="STM32F4" HasPowerPad="false" IOType="" Line="STM32F407/417" Package="LQFP100" RefName="STM32F407V(E-G)Tx" xmlns="http://mcd.rou.st.com/modules.php?name=mcu">
  <Core>ARM Cortex-M4</Core>
  <IP InstanceName="ADC1" Name="ADC" Version="STM32F4_adc_v1_0"/>
  <IP InstanceName="GPIO" Name="GPIO" Version="STM32F417_gpio_v1_0"/>
  <IP InstanceName="USART1" Name="USART" Version="sci2_v1_1"/>
  <Pin Name="PE2" Position="1" Type="I/O"/>
  <Pin Name="VBAT" Position="6" Type="Power"/>
  <Pin Name="PC14-OSC32_IN" Position="8" Type="I/O">
    <Signal Name="RCC_OSC32_IN"/>
  </Pin>
  <Pin Name="PH0-OSC_IN" Position="12" Type="I/O">
    <Signal Name="RCC_OSC_IN"/>
  </Pin>
  <Pin Name="NRST" Position="14" Type="Reset"/>
  <Pin Name="PA0-WKUP" Position="23" Type="I/O">
    <Signal Name="SYS_WKUP"/>
  </Pin>
  <Pin Name="PA5" Position="30" Type="I/O">
    <Signal Name="ADC1_IN5"/>
    <Signal Name="SPI1_SCK"/>
  </Pin>
  <Pin Name="PB2" Position="36" Type="I/O"/>
  <Pin Name="PB2-BOOT1" Position="37" Type="I/O"/>
  <Pin Name="PB12" Position="51" Type="I/O"/>
  <Pin Name="PA9" Position="68" Type="I/O">
    <Signal Name="USART1_TX"/>
  </Pin>
  <Pin Name="PA10" Position="69" Type="I/O">
    <Signal Name="USART1_RX"/>
  </Pin>
</Mcu>
`

const f417GPIOXML = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<IP xmlns="http://mcd.rou.st.com/modules.php?name=mcu" DBVersion="V4.0" IPType="peripheral" Name="GPIO" Version="STM32F417_gpio_v1_0">
  <RefParameter Comment="Maximum output speed" DefaultValue="GPIO_SPEED_FREQ_LOW" Name="GPIO_Speed" Type="list"/>
  <RefParameter Comment="GPIO Pull-up/Pull-down" DefaultValue="GPIO_NOPULL" Name="GPIO_PuPd" Type="list"/>
  <RefParameter Comment="GPIO Output level" DefaultValue="GPIO_PIN_RESET" Name="PinState" Type="list"/>
  <RefParameter Comment="GPIO mode" DefaultValue="GPIO_MODE_OUTPUT_PP" Name="GPIO_ModeDefaultOutputPP" Type="list"/>
  <RefParameter Comment="GPIO mode" DefaultValue="GPIO_MODE_AF_PP" Name="GPIO_ModeDefaultPP" Type="list"/>
  <RefParameter Comment="User Label" Name="GPIO_Label" Type="String"/>
  <GPIO_Pin PortName="PA" Name="PA0-WKUP">
    <PinSignal Name="SYS_WKUP">
      <SpecificParameter Name="GPIO_Mode">
        <PossibleValue>GPIO_MODE_INPUT</PossibleValue>
      </SpecificParameter>
    </PinSignal>
  </GPIO_Pin>
  <GPIO_Pin PortName="PA" Name="PA5">
    <PinSignal Name="SPI1_SCK">
      <SpecificParameter Name="GPIO_AF">
        <PossibleValue>GPIO_AF5_SPI1</PossibleValue>
      </SpecificParameter>
    </PinSignal>
  </GPIO_Pin>
  <GPIO_Pin PortName="PA" Name="PA9">
    <PinSignal Name="TIM1_CH2">
      <SpecificParameter Name="GPIO_AF">
        <PossibleValue>GPIO_AF1_TIM1</PossibleValue>
      </SpecificParameter>
    </PinSignal>
    <PinSignal Name="USART1_TX">
      <SpecificParameter Name="GPIO_Speed">
        <PossibleValue>GPIO_SPEED_FREQ_VERY_HIGH</PossibleValue>
      </SpecificParameter>
      <SpecificParameter Name="GPIO_AF">
        <PossibleValue>GPIO_AF7_USART1</PossibleValue>
      </SpecificParameter>
    </PinSignal>
  </GPIO_Pin>
  <GPIO_Pin PortName="PA" Name="PA10">
    <PinSignal Name="USART1_RX">
      <SpecificParameter Name="GPIO_AF">
        <PossibleValue>GPIO_AF7_USART1</PossibleValue>
      </SpecificParameter>
    </PinSignal>
  </GPIO_Pin>
</IP>
`

const l476XML = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<Mcu Family="STM32L4" Package="LQFP64" RefName="STM32L476R(C-E-G)Tx" xmlns="http://mcd.rou.st.com/modules.php?name=mcu">
  <Core>ARM Cortex-M4</Core>
  <IP InstanceName="GPIO" Name="GPIO" Version="STM32L476_gpio_v1_0"/>
  <Pin Name="VDD" Position="1" Type="Power"/>
  <Pin Name="PA0" Position="14" Type="I/O"/>
  <Pin Name="PA1" Position="15" Type="I/O"/>
  <Pin Name="PA2" Position="16" Type="I/O"/>
  <Pin Name="PB3 (JTDO-TRACESWO)" Position="55" Type="I/O"/>
</Mcu>
`

const l476GPIOXML = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<IP xmlns="http://mcd.rou.st.com/modules.php?name=mcu" Name="GPIO" Version="STM32L476_gpio_v1_0">
  <RefParameter DefaultValue="GPIO_SPEED_FREQ_LOW" Name="GPIO_Speed"/>
  <RefParameter DefaultValue="GPIO_NOPULL" Name="GPIO_PuPd"/>
  <GPIO_Pin PortName="PA" Name="PA2">
    <PinSignal Name="USART2_TX">
      <SpecificParameter Name="GPIO_AF">
        <PossibleValue>GPIO_AF7_USART2</PossibleValue>
      </SpecificParameter>
    </PinSignal>
  </GPIO_Pin>
</IP>
`

const h743XML = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<Mcu Family="STM32H7" RefName="STM32H743ZITx" xmlns="http://mcd.rou.st.com/modules.php?name=mcu">
  <Pin Name="PA0" Position="34" Type="I/O"/>
  <Pin Name="PB1" Position="47" Type="I/O"/>
</Mcu>
`

// WriteCubeDB writes a miniature CubeMX database into a temporary
// directory and returns its root.
func WriteCubeDB(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"db/mcu/families.xml":                          familiesXML,
		"db/mcu/STM32F407V(E-G)Tx.xml":                 f407XML,
		"db/mcu/IP/GPIO-STM32F417_gpio_v1_0_Modes.xml": f417GPIOXML,
		"db/mcu/STM32L476R(C-E-G)Tx.xml":               l476XML,
		"db/mcu/IP/GPIO-STM32L476_gpio_v1_0_Modes.xml": l476GPIOXML,
		"db/mcu/STM32H743ZITx.xml":                     h743XML,
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create fixture dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
	return root
}

// WriteFile writes content to name below a fresh temporary directory and
// returns the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
