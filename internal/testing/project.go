package testing

// ProjectF407 is a CubeMX project for PartF407 with an LED, a USART and
// an external HSE clock.
const ProjectF407 = `#MicroXplorer Configuration settings - do not modify
File.Version=6
Mcu.Family=STM32F4
Mcu.Name=STM32F407V(E-G)Tx
Mcu.Package=LQFP100
Mcu.UserName=STM32F407VETx
PA5.GPIOParameters=GPIO_Label,PinState
PA5.GPIO_Label=LED
PA5.Locked=true
PA5.PinState=GPIO_PIN_SET
PA5.Signal=GPIO_Output
PA9.Mode=Asynchronous
PA9.Signal=USART1_TX
PA10.Mode=Asynchronous
PA10.Signal=USART1_RX
PH0-OSC_IN.Mode=HSE-External-Oscillator
PH0-OSC_IN.Signal=RCC_OSC_IN
PCC.PartNumber=STM32F407VETx
PCC.Vdd=3.3
RCC.HSE_VALUE=25000000
ProjectManager.ProjectName=demo
`

// ProjectWithoutPart names no part number.
const ProjectWithoutPart = `File.Version=6
PA5.Signal=GPIO_Output
`
